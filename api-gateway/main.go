package main

import (
	"net/http"

	"meal-together/api-gateway/internal/gateway"
	"meal-together/config"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	log := config.NewLogger("api-gateway")
	settings := config.Load(log)

	handler := newServer(settings, &http.Client{}, log.WithField("component", "gateway"))

	log.WithField("addr", settings.GatewayAddr).Info("API Gateway starting")
	log.Fatal(http.ListenAndServe(settings.GatewayAddr, handler))
}

func newServer(settings config.Settings, client gateway.HTTPClient, log *logrus.Entry) http.Handler {
	gw := gateway.NewGateway(gateway.Config{SessionSvcURL: settings.SessionSvcURL}, client, log)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", gateway.UserHeader, gateway.RequestIDHeader},
		ExposedHeaders: []string{gateway.RequestIDHeader},
	})
	return c.Handler(gw.SetupRoutes())
}
