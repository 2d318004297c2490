package routes

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"gorm.io/gorm"

	"github.com/soundstitch/storefront/app/configs"
	"github.com/soundstitch/storefront/app/handlers"
	"github.com/soundstitch/storefront/app/middlewares"
	"github.com/soundstitch/storefront/app/repositories"
	"github.com/soundstitch/storefront/app/services"
)

const paymentNotificationPath = "/api/payments/notification"

func NewRouter(db *gorm.DB, env configs.ENV) http.Handler {
	rnd := render.New()

	snapshotRepo := repositories.NewSnapshotRepository(db)
	sampleRepo := repositories.NewSampleRepository(db)
	packRepo := repositories.NewPackRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	detailsRepo := repositories.NewCheckoutDetailsRepository(db)

	cartSvc := services.NewCartService(snapshotRepo)
	snapClient := configs.GetMidtransSnapClient()
	coreClient := configs.GetMidtransCoreAPIClient()
	checkoutSvc := services.NewCheckoutService(cartSvc, orderRepo, detailsRepo, &snapClient, env.AppBaseURL)
	paymentSvc := services.NewPaymentService(cartSvc, orderRepo, detailsRepo, &coreClient)

	cartHandler := handlers.NewCartHandler(cartSvc, sampleRepo, packRepo, rnd)
	catalogHandler := handlers.NewCatalogHandler(sampleRepo, packRepo, rnd)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutSvc, rnd)
	paymentHandler := handlers.NewPaymentHandler(paymentSvc, rnd)

	router := mux.NewRouter()
	router.Use(middlewares.RequestLogMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_ = rnd.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middlewares.CartSessionMiddleware)

	api.HandleFunc("/csrf", func(w http.ResponseWriter, r *http.Request) {
		_ = rnd.JSON(w, http.StatusOK, map[string]string{"csrfToken": csrf.Token(r)})
	}).Methods("GET")

	api.HandleFunc("/samples", catalogHandler.ListSamples).Methods("GET")
	api.HandleFunc("/samples/{id}", catalogHandler.GetSample).Methods("GET")
	api.HandleFunc("/packs", catalogHandler.ListPacks).Methods("GET")
	api.HandleFunc("/packs/{id}", catalogHandler.GetPack).Methods("GET")

	api.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	api.HandleFunc("/cart", cartHandler.ClearCart).Methods("DELETE")
	api.HandleFunc("/cart/items", cartHandler.AddItem).Methods("POST")
	api.HandleFunc("/cart/items/{id}", cartHandler.UpdateQuantity).Methods("PATCH")
	api.HandleFunc("/cart/items/{id}", cartHandler.RemoveItem).Methods("DELETE")
	api.HandleFunc("/cart/samples/{id}", cartHandler.AddSample).Methods("POST")
	api.HandleFunc("/cart/packs/{id}", cartHandler.AddPack).Methods("POST")

	api.HandleFunc("/checkout/details", checkoutHandler.SaveDetails).Methods("PUT")
	api.HandleFunc("/checkout/summary", checkoutHandler.Summary).Methods("GET")
	api.HandleFunc("/checkout", checkoutHandler.Checkout).Methods("POST")
	api.HandleFunc("/orders", checkoutHandler.ListOrders).Methods("GET")

	router.HandleFunc(paymentNotificationPath, paymentHandler.Notification).Methods("POST")

	if env.CSRFKey == "" {
		return router
	}

	protect := csrf.Protect(
		[]byte(env.CSRFKey),
		csrf.Path("/"),
		csrf.Secure(false),
	)
	return skipWebhookCSRF(protect(router))
}

// skipWebhookCSRF exempts the Midtrans webhook: Midtrans cannot carry a
// CSRF token, and the notification is verified against the Core API
// before anything is applied.
func skipWebhookCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == paymentNotificationPath {
			r = csrf.UnsafeSkipCheck(r)
		}
		next.ServeHTTP(w, r)
	})
}
