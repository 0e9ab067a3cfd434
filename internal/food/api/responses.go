package api

import (
	"github.com/rise-and-shine/foodcatalog/internal/food"
	"github.com/rise-and-shine/foodcatalog/internal/imagestore"
)

type foodResponse struct {
	Success bool       `json:"success"`
	Data    *food.Food `json:"data"`
	Message string     `json:"message,omitempty"`
}

type listResponse struct {
	Success bool        `json:"success"`
	Data    []food.Food `json:"data"`
	Count   int         `json:"count"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type imageInfoResponse struct {
	Success bool             `json:"success"`
	Data    *imagestore.Info `json:"data"`
}
