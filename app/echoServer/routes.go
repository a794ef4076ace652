package echoServer

import (
	"booknetwork/app/echoServer/controller/auth"
	"booknetwork/app/echoServer/controller/book"
	"booknetwork/app/echoServer/controller/feedback"
	"booknetwork/app/echoServer/controller/lending"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Book      *book.Controller
	Lending   *lending.Controller
	Feedback  *feedback.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/auth/register", c.Auth.Register)
	pub.POST("/auth/login", c.Auth.Login)

	// Auth
	g := e.Group("/v1")
	g.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(c.JWTSecret),
		TokenLookup: "header:Authorization:Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return jwt.MapClaims{}
		},
	}))

	// Books
	g.POST("/books", c.Book.Create)
	g.GET("/books/:id", c.Book.Detail)
	g.POST("/books/cover/:id", c.Book.UploadCover)

	// Lending engine: reads
	g.GET("/books", c.Lending.ListDisplayable)
	g.GET("/books/owner", c.Lending.ListOwned)
	g.GET("/books/borrowed", c.Lending.ListBorrowed)
	g.GET("/books/returned", c.Lending.ListReturned)

	// Lending engine: mutations
	g.PATCH("/books/shareable/:id", c.Lending.ToggleShareable)
	g.PATCH("/books/archived/:id", c.Lending.ToggleArchived)
	g.POST("/books/borrow/:id", c.Lending.Borrow)
	g.PATCH("/books/borrow/return/:id", c.Lending.Return)
	g.PATCH("/books/borrow/return/approve/:id", c.Lending.ApproveReturn)

	// Feedback
	g.POST("/feedbacks", c.Feedback.Create)
	g.GET("/feedbacks/book/:id", c.Feedback.ListByBook)
}
