// Imports license keys from an xlsx file into the key pool.
//
// Usage: go run ./scripts/import_keys keys.xlsx
//
// Each sheet row: column A = plan ID, column B = key. The first row is
// treated as a header and skipped.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/koptenko/caseshop_bot/internal/catalog"
	"github.com/koptenko/caseshop_bot/internal/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: import_keys <file.xlsx>")
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"), os.Getenv("DB_SSLMODE"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	totalImported := 0

	for _, sheetName := range f.GetSheetList() {
		fmt.Printf("Importing sheet: %s\n", sheetName)
		rows, err := f.GetRows(sheetName)
		if err != nil {
			fmt.Printf("Error reading sheet %s: %v\n", sheetName, err)
			continue
		}

		for i, row := range rows {
			if i == 0 || len(row) < 2 { // Skip header or invalid rows
				continue
			}

			planID, err := strconv.Atoi(strings.TrimSpace(row[0]))
			if err != nil {
				fmt.Printf("Invalid plan id %q in row %d\n", row[0], i)
				continue
			}
			if _, ok := catalog.GetPlan(planID); !ok {
				fmt.Printf("Unknown plan %d in row %d\n", planID, i)
				continue
			}

			keyValue := strings.TrimSpace(row[1])
			if keyValue == "" {
				continue
			}

			key := models.LicenseKey{
				Key:    keyValue,
				PlanID: planID,
			}
			if err := db.Create(&key).Error; err != nil {
				fmt.Printf("Error creating key in row %d: %v\n", i, err)
			} else {
				totalImported++
			}
		}
	}

	fmt.Printf("Successfully imported %d keys.\n", totalImported)
}
