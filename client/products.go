package client

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mattbenson/storefront/gen/sdk"
	"github.com/mattbenson/storefront/model"
)

type productAPI struct {
	api *sdk.Client
}

func (a productAPI) List(ctx context.Context) ([]model.Product, error) {
	wire, _, err := a.api.GetApiProducts(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	products := make([]model.Product, len(wire))
	for i, w := range wire {
		products[i] = productFromWire(w)
	}
	return products, nil
}

func (a productAPI) Get(ctx context.Context, id int64) (*model.Product, error) {
	wire, _, err := a.api.GetApiProductsById(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	p := productFromWire(*wire)
	return &p, nil
}

func (a productAPI) Create(ctx context.Context, p model.Product) (*model.Product, error) {
	wire, _, err := a.api.PostApiProducts(ctx, productToWire(p))
	if err != nil {
		return nil, mapError(err)
	}
	created := productFromWire(*wire)
	return &created, nil
}

func (a productAPI) Update(ctx context.Context, id int64, p model.Product) error {
	_, err := a.api.PutApiProductsById(ctx, id, productToWire(p))
	return mapError(err)
}

func (a productAPI) Delete(ctx context.Context, id int64) error {
	_, err := a.api.DeleteApiProductsById(ctx, id)
	return mapError(err)
}

func productToWire(p model.Product) sdk.Product {
	return sdk.Product{
		Id:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Sku:           p.SKU,
		Price:         p.Price.InexactFloat64(),
		DiscountPrice: p.DiscountPrice.InexactFloat64(),
		Category:      p.Category,
		Brand:         p.Brand,
		StockQuantity: int64(p.StockQuantity),
		Rating:        p.Rating,
		ReviewCount:   int64(p.ReviewCount),
		ImageUrl:      p.ImageURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		IsAvailable:   p.IsAvailable,
		Tags:          p.Tags,
	}
}

func productFromWire(w sdk.Product) model.Product {
	return model.Product{
		ID:            w.Id,
		Name:          w.Name,
		Description:   w.Description,
		SKU:           w.Sku,
		Price:         decimal.NewFromFloat(w.Price),
		DiscountPrice: decimal.NewFromFloat(w.DiscountPrice),
		Category:      w.Category,
		Brand:         w.Brand,
		StockQuantity: int(w.StockQuantity),
		Rating:        w.Rating,
		ReviewCount:   int(w.ReviewCount),
		ImageURL:      w.ImageUrl,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
		IsAvailable:   w.IsAvailable,
		Tags:          w.Tags,
	}
}
