package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/Skotchmaster/course_shop/internal/logging"
	"github.com/Skotchmaster/course_shop/internal/models"
	"github.com/Skotchmaster/course_shop/internal/repo"
)

type Repos struct {
	Users      repo.UserRepository
	Categories repo.CategoryRepository
	Products   repo.ProductRepository
	Orders     repo.OrderRepository
}

func at(s string) time.Time {
	t, err := time.Parse(models.MomentLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Run loads the sample data set into an empty database. It does nothing
// when users already exist.
func Run(ctx context.Context, r Repos) error {
	l := logging.FromContext(ctx).With("component", "seed")

	existing, err := r.Users.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("seed: list users: %w", err)
	}
	if len(existing) > 0 {
		l.Info("seed_skipped", "reason", "database is not empty")
		return nil
	}

	u1 := &models.User{Name: "Maria Brown", Email: "maria@gmail.com", Phone: "988888888", Password: "123456"}
	u2 := &models.User{Name: "Alex Green", Email: "alex@gmail.com", Phone: "977777777", Password: "123456"}
	for _, u := range []*models.User{u1, u2} {
		if _, err := r.Users.Create(ctx, u); err != nil {
			return fmt.Errorf("seed: user %s: %w", u.Name, err)
		}
	}

	cat1 := &models.Category{Name: "Electronics"}
	cat2 := &models.Category{Name: "Books"}
	cat3 := &models.Category{Name: "Computers"}
	for _, c := range []*models.Category{cat1, cat2, cat3} {
		if _, err := r.Categories.Create(ctx, c); err != nil {
			return fmt.Errorf("seed: category %s: %w", c.Name, err)
		}
	}

	p1 := &models.Product{Name: "The Lord of the Rings", Description: "Lorem ipsum dolor sit amet, consectetur.", Price: 90.5}
	p2 := &models.Product{Name: "Smart TV", Description: "Nulla eu imperdiet purus. Maecenas ante.", Price: 2190.0}
	p3 := &models.Product{Name: "Macbook Pro", Description: "Nam eleifend maximus tortor, at mollis.", Price: 1250.0}
	p4 := &models.Product{Name: "PC Gamer", Description: "Donec aliquet odio ac rhoncus cursus.", Price: 1200.0}
	p5 := &models.Product{Name: "Rails for Dummies", Description: "Cras fringilla convallis sem vel faucibus.", Price: 100.99}
	for _, p := range []*models.Product{p1, p2, p3, p4, p5} {
		if _, err := r.Products.Create(ctx, p); err != nil {
			return fmt.Errorf("seed: product %s: %w", p.Name, err)
		}
	}

	links := []struct {
		p *models.Product
		c *models.Category
	}{
		{p1, cat2}, {p2, cat1}, {p2, cat3}, {p3, cat3}, {p4, cat3}, {p5, cat2},
	}
	for _, link := range links {
		if err := r.Products.AddCategory(ctx, link.p.ID, link.c.ID); err != nil {
			return fmt.Errorf("seed: link %s to %s: %w", link.p.Name, link.c.Name, err)
		}
	}

	o1 := models.NewOrder(at("2019-06-20T19:53:07Z"), models.Paid, u1)
	o1.Items = []models.OrderItem{
		models.NewOrderItem(o1, p1, 2, p1.Price),
		models.NewOrderItem(o1, p3, 1, p3.Price),
	}
	o1.SetPayment(&models.Payment{Moment: at("2019-06-20T21:53:07Z")})

	o2 := models.NewOrder(at("2019-07-21T03:42:10Z"), models.WaitingPayment, u2)
	o2.Items = []models.OrderItem{models.NewOrderItem(o2, p3, 2, p3.Price)}

	o3 := models.NewOrder(at("2019-07-22T15:21:22Z"), models.WaitingPayment, u1)
	o3.Items = []models.OrderItem{models.NewOrderItem(o3, p5, 2, p5.Price)}

	for _, o := range []*models.Order{o1, o2, o3} {
		if _, err := r.Orders.Create(ctx, o); err != nil {
			return fmt.Errorf("seed: order: %w", err)
		}
	}

	l.Info("seed_completed", "users", 2, "categories", 3, "products", 5, "orders", 3)
	return nil
}
