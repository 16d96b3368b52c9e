package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/orderdesk/app/forms"
	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/config"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/storage"
	"github.com/shashiranjanraj/orderdesk/pkg/validate"
)

// imageTypes maps accepted upload types to the stored extension.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// Upload is a file submitted with a form.
type Upload struct {
	Filename string
	Size     int64
	Body     io.Reader
}

// SelfOrders is the customer's own order page.
type SelfOrders struct {
	OrderStats
	Customer models.Customer
	Orders   []models.Order
}

// AccountService serves the signed-in customer's own data. Callers pass
// the principal's user id; there is no way to address another customer.
type AccountService struct {
	customers *repositories.CustomerRepository
	orders    *repositories.OrderRepository
	disks     *storage.Manager
}

func NewAccountService(customers *repositories.CustomerRepository, orders *repositories.OrderRepository, disks *storage.Manager) *AccountService {
	return &AccountService{customers: customers, orders: orders, disks: disks}
}

func (s *AccountService) Profile(ctx context.Context, userID uint) (models.Customer, error) {
	return s.customers.FindByUserID(ctx, userID)
}

// PictureURL returns the public URL of a stored profile picture.
func (s *AccountService) PictureURL(key string) string {
	if key == "" || s.disks == nil {
		return ""
	}
	return s.disks.Default().URL(key)
}

// UpdateProfile saves f and, when pic is set, replaces the profile picture.
func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, f forms.ProfileForm, pic *Upload) (models.Customer, error) {
	c, err := s.customers.FindByUserID(ctx, userID)
	if err != nil {
		return models.Customer{}, err
	}

	errs := validate.Struct(f)
	var (
		body io.Reader
		ext  string
		mime string
	)
	switch {
	case pic != nil && s.disks == nil:
		errs["profile_pic"] = "Profile pictures cannot be stored right now."
	case pic != nil:
		body, mime, ext, err = sniffImage(pic)
		if err != nil {
			errs["profile_pic"] = err.Error()
		}
	}
	if validate.HasErrors(errs) {
		return c, invalid(errs)
	}

	c.Name, c.Phone, c.Email = f.Name, f.Phone, f.Email
	if body == nil {
		if err := s.customers.UpdateProfile(ctx, &c); err != nil {
			return c, fmt.Errorf("update profile: %w", err)
		}
		return c, nil
	}

	disk := s.disks.Default()
	old := c.ProfilePic
	c.ProfilePic = "profiles/" + uuid.NewString() + ext
	if err := disk.Put(ctx, c.ProfilePic, body, mime); err != nil {
		return c, fmt.Errorf("store profile picture: %w", err)
	}
	if err := s.customers.UpdateProfile(ctx, &c); err != nil {
		_ = disk.Delete(ctx, c.ProfilePic)
		return c, fmt.Errorf("update profile: %w", err)
	}
	if old != "" {
		if err := disk.Delete(ctx, old); err != nil {
			logger.WithCtx(ctx).Warn("account: delete old profile picture", "key", old, "error", err)
		}
	}
	return c, nil
}

// Orders returns the customer's own orders with their counts.
func (s *AccountService) Orders(ctx context.Context, userID uint) (SelfOrders, error) {
	c, err := s.customers.FindByUserID(ctx, userID)
	if err != nil {
		return SelfOrders{}, err
	}
	q := repositories.OrderQuery{CustomerID: &c.ID}
	orders, err := s.orders.Find(ctx, q)
	if err != nil {
		return SelfOrders{}, fmt.Errorf("self orders: %w", err)
	}
	st, err := orderStats(ctx, s.orders, q)
	if err != nil {
		return SelfOrders{}, fmt.Errorf("self orders: %w", err)
	}
	return SelfOrders{OrderStats: st, Customer: c, Orders: orders}, nil
}

// sniffImage checks size and content type of an upload. The returned
// reader replays the sniffed bytes.
func sniffImage(pic *Upload) (io.Reader, string, string, error) {
	limit := config.MaxUploadBytes()
	if pic.Size > limit {
		return nil, "", "", fmt.Errorf("The profile pic may not be greater than %d kilobytes.", limit>>10)
	}
	br := bufio.NewReaderSize(pic.Body, 512)
	head, _ := br.Peek(512)
	if len(head) == 0 {
		return nil, "", "", errors.New("The submitted file is empty.")
	}
	mime := http.DetectContentType(head)
	ext, ok := imageTypes[mime]
	if !ok {
		return nil, "", "", errors.New("Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	return io.LimitReader(br, limit), mime, ext, nil
}
