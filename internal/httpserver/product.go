package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/flashmarket/backend/internal/logging"
	"github.com/flashmarket/backend/internal/models"
	"github.com/flashmarket/backend/internal/mykafka"
	"github.com/flashmarket/backend/internal/service"
	"github.com/flashmarket/backend/internal/service/search"
	"github.com/flashmarket/backend/internal/transport"
)

type ProductHTTP struct {
	Svc      *service.CatalogService
	Producer mykafka.Publisher
	ES       *elasticsearch.Client
	Index    string
}

func (h *ProductHTTP) publish(c echo.Context, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

// index mirrors the product into the search index, best effort.
func (h *ProductHTTP) index(c echo.Context, p *models.Product) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.IndexProduct(ctx, h.ES, h.Index, transport.ToProductResponse(p)); err != nil {
		logging.FromContext(c.Request().Context()).Warn("search index error", "error", err)
	}
}

func (h *ProductHTTP) unindex(c echo.Context, id uint) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.DeleteProduct(ctx, h.ES, h.Index, id); err != nil {
		logging.FromContext(c.Request().Context()).Warn("search delete error", "error", err)
	}
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	products, err := h.Svc.ListProducts(ctx)
	if err != nil {
		l.Error("get_products_error", "status", 500, "reason", "cannot fetch products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch products")
	}
	return c.JSON(http.StatusOK, transport.ToProductResponses(products))
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "Product not found.")
		}
		l.Error("get_product_error", "status", 500, "reason", "cannot fetch product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch product")
	}
	return c.JSON(http.StatusOK, transport.ToProductResponse(product))
}

func (h *ProductHTTP) GetApprovedProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_approved")

	products, err := h.Svc.ListApproved(ctx)
	if err != nil {
		l.Error("get_approved_error", "status", 500, "reason", "cannot fetch products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch products")
	}
	return c.JSON(http.StatusOK, transport.ToProductResponses(products))
}

func (h *ProductHTTP) GetProductsByOwner(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_by_owner")

	ownerID, err := parseID(c.Param("ownerId"))
	if err != nil {
		l.Warn("get_by_owner_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	products, err := h.Svc.ListByOwner(ctx, ownerID)
	if err != nil {
		l.Error("get_by_owner_error", "status", 500, "reason", "cannot fetch products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch products")
	}
	return c.JSON(http.StatusOK, transport.ToProductResponses(products))
}

// CreateProduct accepts multipart/form-data: plain fields plus either direct
// image URLs ("images") or uploaded files ("files"). The first URL wins over
// any file.
func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "price is not a number")
		return echo.NewHTTPError(http.StatusBadRequest, "price is not a number")
	}
	stock, _ := strconv.Atoi(c.FormValue("stock"))
	available, _ := strconv.ParseBool(c.FormValue("available"))
	ownerID, err := parseID(c.FormValue("productOwnerId"))
	if err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid product owner id")
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product owner ID")
	}

	in := transport.CreateProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Price:       price,
		Stock:       stock,
		Category:    c.FormValue("category"),
		Available:   available,
		OwnerID:     ownerID,
		SizesCSV:    c.FormValue("productSizes"),
		ColorsCSV:   c.FormValue("productColors"),
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		in.ImageURLs = form.Value["images"]
		if files := form.File["files"]; len(files) > 0 {
			data, err := readFormFile(files[0])
			if err != nil {
				l.Error("create_product_error", "status", 500, "reason", "cannot read image file", "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "Error processing image file.")
			}
			in.ImageUpload = data
		}
	}

	product, err := h.Svc.CreateProduct(ctx, in)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_error", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_product_error", "status", 500, "reason", "cannot add product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product")
	}

	h.publish(c, map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
		"ownerID":   product.ProductOwnerID,
	})
	h.index(c, product)
	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusOK, transport.ToProductResponse(product))
}

func (h *ProductHTTP) ApproveProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.approve_product")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("approve_product_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.Approve(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("approve_product_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "Product not found.")
		}
		l.Error("approve_product_error", "status", 500, "reason", "cannot approve product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot approve product")
	}

	h.publish(c, map[string]any{"type": "product_approved", "productID": id})
	if product, err := h.Svc.GetProduct(ctx, id); err == nil {
		h.index(c, product)
	}
	l.Info("approve_product_success", "product_id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "Product approved successfully."})
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("delete_product_error", "status", 400, "reason", "id is not an integer")
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_product_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "Product not found.")
		}
		l.Error("delete_product_error", "status", 500, "reason", "cannot delete product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error deleting product.")
	}

	h.publish(c, map[string]any{"type": "product_deleted", "productID": id})
	h.unindex(c, id)
	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully."})
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
