package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"shotbot/internal/config"
	"shotbot/internal/database"
	"shotbot/internal/logger"
)

func main() {
	// Получаем порт из переменной окружения
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Получаем хост из переменной окружения
	host := os.Getenv("HOST")
	if host == "" {
		host = "0.0.0.0"
	}

	// Параметры базы из config.yaml и SHOTBOT_DATABASE_*
	c, err := config.Load(nil)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	db, err := database.Open(c.Database)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()

	log.Printf("Успешно подключились к базе данных %s на %s:%d", c.Database.Name, c.Database.Host, c.Database.Port)

	handler, err := newHandler(database.NewDatabaseManager(db, logger.NewWriterLogger(os.Stdout)))
	if err != nil {
		log.Fatalf("Ошибка загрузки шаблонов: %v", err)
	}

	fmt.Printf("🚀 shotbot web viewer запущен на порту %s\n", port)
	fmt.Printf("🌐 Откройте http://localhost:%s в браузере\n", port)

	if err := http.ListenAndServe(host+":"+port, handler); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
