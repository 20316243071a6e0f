package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"academy/config"
	"academy/database"
	courseModels "academy/models/course"
)

// Imports CourseCatalog.csv into the courses and modules tables.
// Expected headers: Title, Description, Author, Duration, Price, Published, Modules
// The Modules column is a pipe-separated list of module titles in unlock order.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open("CourseCatalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	field := func(row []string, name string) string {
		idx, ok := headerIndex[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	db := database.Database.Db

	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		title := field(row, "Title")
		if title == "" {
			log.Printf("Row %d: missing title, skipping", i+2)
			skipped++
			continue
		}

		duration, _ := strconv.ParseInt(field(row, "Duration"), 10, 64)
		price, _ := strconv.ParseInt(field(row, "Price"), 10, 64)
		published := strings.EqualFold(field(row, "Published"), "true")

		var course courseModels.Course
		err := db.Where("title = ? AND is_deleted = ?", title, false).First(&course).Error
		isNew := err != nil

		course.Title = title
		course.Description = field(row, "Description")
		course.Author = field(row, "Author")
		course.Duration = duration
		course.Price = price
		course.IsPublished = published

		if isNew {
			if err := db.Create(&course).Error; err != nil {
				log.Printf("Row %d: failed to insert course %q: %v", i+2, title, err)
				skipped++
				continue
			}
			inserted++
		} else {
			if err := db.Save(&course).Error; err != nil {
				log.Printf("Row %d: failed to update course %q: %v", i+2, title, err)
				skipped++
				continue
			}
			updated++
		}

		modulesField := field(row, "Modules")
		if modulesField == "" {
			continue
		}

		for idx, moduleTitle := range strings.Split(modulesField, "|") {
			moduleTitle = strings.TrimSpace(moduleTitle)
			if moduleTitle == "" {
				continue
			}

			var module courseModels.Module
			err := db.Where("course_id = ? AND order_index = ? AND is_deleted = ?", course.ID, idx, false).
				First(&module).Error

			module.CourseID = course.ID
			module.Title = moduleTitle
			module.OrderIndex = idx

			if err != nil {
				if err := db.Create(&module).Error; err != nil {
					log.Printf("Row %d: failed to insert module %q: %v", i+2, moduleTitle, err)
				}
			} else if err := db.Save(&module).Error; err != nil {
				log.Printf("Row %d: failed to update module %q: %v", i+2, moduleTitle, err)
			}
		}
	}

	log.Printf("Import complete: %d inserted, %d updated, %d skipped", inserted, updated, skipped)
}
