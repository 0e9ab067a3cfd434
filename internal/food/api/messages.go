package api

import (
	"github.com/rise-and-shine/foodcatalog/filestore"
	"github.com/rise-and-shine/foodcatalog/internal/food"
	"github.com/rise-and-shine/foodcatalog/val"
)

// Messages returns client facing texts for error codes, keyed by language.
func Messages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			food.CodeFoodNotFound:                "Food item not found",
			food.CodeImageNotFound:               "Food item has no image",
			food.CodeStoreError:                  "Failed to process food item",
			food.CodeInvalidPrice:                "Price must be a valid non-negative number",
			food.CodeInvalidAvailable:            "Available must be true or false",
			food.CodeInvalidField:                "Invalid field value",
			val.CodeValidationFailed:             "Name, price, and category are required",
			filestore.CodeFileNotFound:           "File not found",
			filestore.CodeFileTooLarge:           "Image is too large",
			filestore.CodeUnsupportedContentType: "Only image files are allowed",
		},
	}
}
