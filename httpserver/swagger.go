package httpserver

import (
	"top250/docs"

	echoSwagger "github.com/swaggo/echo-swagger"
)

const swaggerPath = "/swagger/*"

func (s *Server) RegisterSwaggerRoutes() {
	s.Router.GET(swaggerPath, echoSwagger.EchoWrapHandler(
		echoSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		echoSwagger.DocExpansion("list"),
	))
}
