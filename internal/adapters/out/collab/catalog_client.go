package collab

import (
	"context"
	"net/http"
	"strings"
	"time"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// HTTPCatalogClient implements ports.CatalogClient against the restaurant
// catalog service.
type HTTPCatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPCatalogClient creates a catalog client for the given base URL.
func NewHTTPCatalogClient(baseURL string, timeout time.Duration) (*HTTPCatalogClient, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	return &HTTPCatalogClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}, nil
}

type portionResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type dishResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Price    float64           `json:"price"`
	Portions []portionResponse `json:"portions"`
}

type restaurantResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	DeliveryFee float64        `json:"deliveryFee"`
	Dishes      []dishResponse `json:"dishes"`
}

// GetRestaurant retrieves a restaurant with its full menu.
func (c *HTTPCatalogClient) GetRestaurant(ctx context.Context, restaurantID string) (*ports.Restaurant, error) {
	if restaurantID == "" {
		return nil, errs.NewValueIsRequiredError("restaurantID")
	}

	var body restaurantResponse
	status, err := getJSON(ctx, c.httpClient, c.baseURL+"/restaurants/"+restaurantID, &body)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, errs.NewObjectNotFoundError("restaurantID", restaurantID)
		}
		return nil, errs.NewCollaboratorFailureError("catalog", "GetRestaurant", err)
	}

	restaurant := &ports.Restaurant{
		ID:          body.ID,
		Name:        body.Name,
		DeliveryFee: body.DeliveryFee,
		Dishes:      make([]ports.Dish, 0, len(body.Dishes)),
	}
	for _, dish := range body.Dishes {
		portions := make([]ports.Portion, 0, len(dish.Portions))
		for _, portion := range dish.Portions {
			portions = append(portions, ports.Portion{
				ID:    portion.ID,
				Name:  portion.Name,
				Price: portion.Price,
			})
		}
		restaurant.Dishes = append(restaurant.Dishes, ports.Dish{
			ID:       dish.ID,
			Name:     dish.Name,
			Price:    dish.Price,
			Portions: portions,
		})
	}
	return restaurant, nil
}
