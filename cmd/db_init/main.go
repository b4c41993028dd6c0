package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"shotbot/internal/config"
	"shotbot/internal/database"
	"shotbot/internal/logger"
)

func main() {
	fs := config.Flags("db_init")
	drop := fs.Bool("drop", false, "drop the journal database before creating it")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("Ошибка разбора флагов: %v", err)
	}
	c, err := config.Load(fs)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	name := c.Database.Name

	// Подключаемся к MySQL без указания базы
	server := c.Database
	server.Name = ""
	db, err := sql.Open("mysql", database.DSN(server))
	if err != nil {
		log.Fatalf("Ошибка подключения к MySQL: %v", err)
	}
	defer db.Close()

	if *drop {
		if _, err := db.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", name)); err != nil {
			log.Fatalf("Ошибка удаления базы: %v", err)
		}
		fmt.Printf("База данных %s удалена (если была)\n", name)
	}

	_, err = db.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci", name))
	if err != nil {
		log.Fatalf("Ошибка создания базы: %v", err)
	}
	fmt.Printf("База данных %s создана\n", name)

	// Подключаемся к новой базе
	db2, err := database.Open(c.Database)
	if err != nil {
		log.Fatalf("Ошибка подключения к новой базе: %v", err)
	}
	defer db2.Close()

	if err := database.NewDatabaseManager(db2, logger.NewWriterLogger(os.Stdout)).EnsureSchema(); err != nil {
		log.Fatalf("Ошибка создания таблицы shot_results: %v", err)
	}
	fmt.Println("Таблица shot_results создана")
	fmt.Println("Инициализация базы завершена!")
}
