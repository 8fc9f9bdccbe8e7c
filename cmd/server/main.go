package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	httpDelivery "lanchat/internal/delivery/http"
	wsDelivery "lanchat/internal/delivery/websocket"

	"lanchat/infrastructure/ws"
	"lanchat/internal/credentials"
	"lanchat/internal/repository"
	"lanchat/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func Run() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("godotenv: error loading .env file")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}

	scheme := os.Getenv("PASSWORD_SCHEME")
	checker := credentials.ForScheme(scheme)
	if scheme == "bcrypt" {
		log.Println("Using bcrypt password scheme")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(dataDir)
	groupRepo := repository.NewGroupRepository(dataDir)
	chatLogRepo := repository.NewChatLogRepository(dataDir)

	// Initialize use cases; directories load their state from disk here.
	userUc, err := usecase.NewUserUsecase(userRepo, checker)
	if err != nil {
		log.Fatalf("load user directory: %v", err)
	}
	groupUc, err := usecase.NewGroupUsecase(groupRepo)
	if err != nil {
		log.Fatalf("load group directory: %v", err)
	}
	chatLogUc := usecase.NewChatLogUsecase(chatLogRepo)

	maxAuthPerMin := 5
	if v := os.Getenv("AUTH_ATTEMPTS_PER_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			maxAuthPerMin = n
		}
	}

	hub := ws.NewHub()

	websocketH := wsDelivery.NewWebsocketHandler(hub, userUc, groupUc, chatLogUc, maxAuthPerMin)

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	httpDelivery.MapHttpRoutes(router, websocketH)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8888"
	}

	log.Printf("Server starting on :%s (data dir %s)", port, dataDir)

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}
