// Package main book network API.
//
// @title           Book Network API
// @version         1.0
// @description     book sharing service (catalog, lending, feedback, users).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"booknetwork/app/echoServer"
	authctrl "booknetwork/app/echoServer/controller/auth"
	bookctrl "booknetwork/app/echoServer/controller/book"
	feedbackctrl "booknetwork/app/echoServer/controller/feedback"
	lendingctrl "booknetwork/app/echoServer/controller/lending"
	"booknetwork/app/echoServer/validation"
	"booknetwork/config"
	bookrepo "booknetwork/repository/book"
	feedbackrepo "booknetwork/repository/feedback"
	filerepo "booknetwork/repository/file"
	historyrepo "booknetwork/repository/history"
	isbnrepo "booknetwork/repository/isbn"
	userrepo "booknetwork/repository/user"
	authsvc "booknetwork/service/auth"
	booksvc "booknetwork/service/book"
	feedbacksvc "booknetwork/service/feedback"
	lendingsvc "booknetwork/service/lending"
	"booknetwork/util/database"
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB on pgx driver
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	hr := historyrepo.New(db)
	fr := feedbackrepo.New(db)
	mr := isbnrepo.NewHTTP(cfg.ApiNinjasKey)
	files := filerepo.NewDisk(cfg.UploadDir)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	bs := booksvc.New(br, files, mr)
	ls := lendingsvc.New(br, hr)
	fs := feedbacksvc.New(br, fr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	lendingC := &lendingctrl.Controller{Svc: ls, Log: log}
	feedbackC := &feedbackctrl.Controller{Svc: fs, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/metrics", echoServer.MetricsHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:     authC,
		Book:     bookC,
		Lending:  lendingC,
		Feedback: feedbackC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "PORT_env", os.Getenv("PORT"), "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
