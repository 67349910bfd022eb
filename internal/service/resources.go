package service

import (
	"time"

	"github.com/rogerio-castellano/record-services/internal/models"
	"github.com/rogerio-castellano/record-services/internal/repo"
	"github.com/rogerio-castellano/record-services/internal/schema"
)

var userSchema = schema.Schema{
	"username": {Kind: schema.String, Required: true, MinLength: schema.MinLength(3)},
	"email":    {Kind: schema.Email, Required: true},
}

var productSchema = schema.Schema{
	"name":        {Kind: schema.String, Required: true, MinLength: schema.MinLength(3)},
	"description": {Kind: schema.String},
	"price":       {Kind: schema.Float, Required: true, Min: schema.Min(0)},
}

var orderSchema = schema.Schema{
	"user_id":     {Kind: schema.Int, Required: true, Min: schema.Min(1)},
	"product_id":  {Kind: schema.Int, Required: true, Min: schema.Min(1)},
	"quantity":    {Kind: schema.Int, Required: true, Min: schema.Min(1)},
	"total_price": {Kind: schema.Float, Required: true, Min: schema.Min(0)},
}

// date_issued is deliberately absent: it is dump only.
var invoiceSchema = schema.Schema{
	"order_id": {Kind: schema.Int, Required: true, Min: schema.Min(1)},
	"amount":   {Kind: schema.Float, Required: true, Min: schema.Min(0)},
}

func UserResource(store repo.UserRepository) Resource[models.User] {
	return Resource[models.User]{
		Name:   Users,
		Schema: userSchema,
		Build: func(v schema.Values, _ time.Time) models.User {
			return models.User{
				Username: v["username"].(string),
				Email:    v["email"].(string),
			}
		},
		Store:           store,
		NotFound:        repo.ErrUserNotFound,
		NotFoundMessage: "User not found",
		Conflict:        repo.ErrEmailAlreadyInUse,
		ConflictMessage: "Email already in use",
	}
}

func ProductResource(store repo.ProductRepository) Resource[models.Product] {
	return Resource[models.Product]{
		Name:   Products,
		Schema: productSchema,
		Build: func(v schema.Values, _ time.Time) models.Product {
			description, _ := v["description"].(string)
			return models.Product{
				Name:        v["name"].(string),
				Description: description,
				Price:       v["price"].(float64),
			}
		},
		Store:           store,
		NotFound:        repo.ErrProductNotFound,
		NotFoundMessage: "Product not found",
	}
}

func OrderResource(store repo.OrderRepository) Resource[models.Order] {
	return Resource[models.Order]{
		Name:   Orders,
		Schema: orderSchema,
		Build: func(v schema.Values, _ time.Time) models.Order {
			return models.Order{
				UserID:     v["user_id"].(int),
				ProductID:  v["product_id"].(int),
				Quantity:   v["quantity"].(int),
				TotalPrice: v["total_price"].(float64),
			}
		},
		Store:           store,
		NotFound:        repo.ErrOrderNotFound,
		NotFoundMessage: "Order not found",
	}
}

func InvoiceResource(store repo.InvoiceRepository) Resource[models.Invoice] {
	return Resource[models.Invoice]{
		Name:   Invoices,
		Schema: invoiceSchema,
		Build: func(v schema.Values, now time.Time) models.Invoice {
			return models.Invoice{
				OrderID:    v["order_id"].(int),
				Amount:     v["amount"].(float64),
				DateIssued: models.NewDate(now),
			}
		},
		Store:           store,
		NotFound:        repo.ErrInvoiceNotFound,
		NotFoundMessage: "Invoice not found",
	}
}
