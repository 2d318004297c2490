package sessions

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/soundstitch/storefront/app/configs"
)

const (
	SessionCartKey   = "cart_session"
	CartSessionIDKey = "cart_key"
)

var Store = sessions.NewCookieStore([]byte(configs.LoadENV.SessionKey))

func init() {
	Store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false,
	}
}

// GetCartKey returns the session's cart key, minting one on first
// visit.
func GetCartKey(w http.ResponseWriter, r *http.Request) (string, error) {
	session, err := Store.Get(r, SessionCartKey)
	if err != nil {
		return "", err
	}

	if cartKey, ok := session.Values[CartSessionIDKey].(string); ok && cartKey != "" {
		return cartKey, nil
	}

	newCartKey := uuid.New().String()
	session.Values[CartSessionIDKey] = newCartKey
	if err := session.Save(r, w); err != nil {
		return "", err
	}

	return newCartKey, nil
}
