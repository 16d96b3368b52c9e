package controllers

import (
	"errors"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/orderdesk/app/forms"
	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/app/resources"
	"github.com/shashiranjanraj/orderdesk/app/services"
	gql "github.com/shashiranjanraj/orderdesk/pkg/graphql"
	"github.com/shashiranjanraj/orderdesk/pkg/resource"
)

// GraphQLController serves the read-only query API. Resolvers return the
// same maps as the page resources.
type GraphQLController struct {
	handler http.HandlerFunc
}

func NewGraphQLController(products *services.ProductService, customers *services.CustomerService, orders *services.OrderService, dashboard *services.DashboardService) (*GraphQLController, error) {
	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.Int},
			"name":         &graphql.Field{Type: graphql.String},
			"price":        &graphql.Field{Type: graphql.String},
			"category":     &graphql.Field{Type: graphql.String},
			"description":  &graphql.Field{Type: graphql.String},
			"tags":         &graphql.Field{Type: graphql.NewList(graphql.String)},
			"date_created": &graphql.Field{Type: graphql.String},
		},
	})
	refType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Ref",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.Int},
			"name":  &graphql.Field{Type: graphql.String},
			"price": &graphql.Field{Type: graphql.String},
		},
	})
	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.Int},
			"status":       &graphql.Field{Type: graphql.String},
			"note":         &graphql.Field{Type: graphql.String},
			"product":      &graphql.Field{Type: refType},
			"customer":     &graphql.Field{Type: refType},
			"date_created": &graphql.Field{Type: graphql.String},
		},
	})
	customerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.Int},
			"name":         &graphql.Field{Type: graphql.String},
			"phone":        &graphql.Field{Type: graphql.String},
			"email":        &graphql.Field{Type: graphql.String},
			"orders_count": &graphql.Field{Type: graphql.Int},
			"orders":       &graphql.Field{Type: graphql.NewList(orderType)},
			"date_created": &graphql.Field{Type: graphql.String},
		},
	})
	statsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Stats",
		Fields: graphql.Fields{
			"total_orders":    &graphql.Field{Type: graphql.Int},
			"total_delivered": &graphql.Field{Type: graphql.Int},
			"total_pending":   &graphql.Field{Type: graphql.Int},
			"total_customers": &graphql.Field{Type: graphql.Int},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					list, err := products.All(p.Context)
					if err != nil {
						return nil, err
					}
					return resource.Collection(resources.Product, list), nil
				},
			},
			"customers": &graphql.Field{
				Type: graphql.NewList(customerType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					list, err := customers.All(p.Context)
					if err != nil {
						return nil, err
					}
					return resource.Collection(resources.Customer, list), nil
				},
			},
			"customer": &graphql.Field{
				Type: customerType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					if id <= 0 {
						return nil, nil
					}
					d, err := customers.Detail(p.Context, uint(id), forms.OrderFilter{})
					if errors.Is(err, repositories.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					out := resources.Customer(d.Customer)
					out["orders_count"] = d.OrdersCount
					out["orders"] = resource.Collection(resources.Order, d.Orders)
					return out, nil
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var status *models.Status
					if raw, ok := p.Args["status"].(string); ok && raw != "" {
						s := models.Status(raw)
						if !s.Valid() {
							return []resource.Map{}, nil
						}
						status = &s
					}
					list, err := orders.List(p.Context, status)
					if err != nil {
						return nil, err
					}
					return resource.Collection(resources.Order, list), nil
				},
			},
			"stats": &graphql.Field{
				Type: statsType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					st, err := dashboard.Stats(p.Context)
					if err != nil {
						return nil, err
					}
					all, err := customers.All(p.Context)
					if err != nil {
						return nil, err
					}
					out := resources.Stats(st)
					out["total_customers"] = len(all)
					return out, nil
				},
			},
		},
	})

	schema, err := gql.NewSchema(query)
	if err != nil {
		return nil, err
	}
	return &GraphQLController{handler: gql.Handler(schema)}, nil
}

func (h *GraphQLController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler(w, r)
}
