package app

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/karolwisniewski/strumienie-03/internal/domain"
	"github.com/karolwisniewski/strumienie-03/internal/menu"
	"github.com/karolwisniewski/strumienie-03/internal/notify"
	"github.com/karolwisniewski/strumienie-03/internal/report"
)

// Session exposes the report operations as menu actions.
type Session struct {
	engine      *report.Engine
	broadcaster *notify.Broadcaster
	outputDir   string
	subject     string
	tracer      trace.Tracer
}

// NewSession creates a Session over engine. Messages are delivered through
// broadcaster and saved files are written into outputDir.
func NewSession(engine *report.Engine, broadcaster *notify.Broadcaster, outputDir, subject string, tp trace.TracerProvider) *Session {
	return &Session{
		engine:      engine,
		broadcaster: broadcaster,
		outputDir:   outputDir,
		subject:     subject,
		tracer:      tp.Tracer("github.com/karolwisniewski/strumienie-03/internal/app"),
	}
}

type actionFunc func(ctx context.Context, c *menu.Console) error

// Actions returns the numbered menu entries.
func (s *Session) Actions() []menu.Action {
	return []menu.Action{
		s.action(1, "average_price", "Show average price of products bought in given date range.", s.averagePrice),
		s.action(2, "most_expensive", "Show the most expensive product for every category.", s.mostExpensive),
		s.action(3, "order_dates", "Show date with most and date with least quantity of orders.", s.orderDates),
		s.action(4, "top_customer", "Show a customer who paid the most.", s.topCustomer),
		s.action(5, "discounted_total", "Show summary price for all orders having a discount.", s.discountedTotal),
		s.action(6, "minimum_quantity", "Show quantity of customers who bought at least given quantity of products in every order and save them to file.", s.minimumQuantity),
		s.action(7, "popular_category", "Show category which products were bought most often.", s.popularCategory),
		s.action(8, "orders_per_month", "Show quantity of orders in every month.", s.ordersPerMonth),
		s.action(9, "popular_category_per_month", "Show most popular category in every month.", s.popularCategoryPerMonth),
		s.action(10, "send_products", "Send email with products list to customers.", s.sendProducts),
	}
}

func (s *Session) action(key int, name, title string, run actionFunc) menu.Action {
	return menu.Action{
		Key:   key,
		Title: title,
		Run: func(ctx context.Context, c *menu.Console) error {
			ctx, span := s.tracer.Start(ctx, "menu."+name, trace.WithAttributes(
				attribute.Int("menu.key", key),
			))
			defer span.End()

			zctx.From(ctx).Debug("Running action", zap.String("action", name))
			if err := run(ctx, c); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return err
			}
			return nil
		},
	}
}

func (s *Session) averagePrice(_ context.Context, c *menu.Console) error {
	from, err := c.ReadDate("Insert first date of range.")
	if err != nil {
		return err
	}
	to, err := c.ReadDate("Insert second date of range.")
	if err != nil {
		return err
	}
	avg, err := s.engine.AveragePriceInRange(from, to)
	if err != nil {
		return err
	}
	c.Printf("Average price of products bought in date range is: %s\n", avg.StringFixed(2))
	return nil
}

func (s *Session) mostExpensive(_ context.Context, c *menu.Console) error {
	for _, cp := range s.engine.MostExpensiveProductPerCategory() {
		c.Printf("In %s category %s is the most expensive product\n", cp.Category, cp.Product)
	}
	return nil
}

func (s *Session) orderDates(_ context.Context, c *menu.Console) error {
	least, err := s.engine.DateWithLeastOrders()
	if err != nil {
		return err
	}
	most, err := s.engine.DateWithMostOrders()
	if err != nil {
		return err
	}
	c.Printf("Date %s was date with least quantity of orders.\n", least.Format(domain.DateLayout))
	c.Printf("Date %s was date with most quantity of orders.\n", most.Format(domain.DateLayout))
	return nil
}

func (s *Session) topCustomer(_ context.Context, c *menu.Console) error {
	best, err := s.engine.CustomerWhoPaidMost()
	if err != nil {
		return err
	}
	c.Printf("Customer who paid the most for their orders: %s, total %s\n", best.Customer, best.Total.StringFixed(2))
	return nil
}

func (s *Session) discountedTotal(_ context.Context, c *menu.Console) error {
	c.Printf("Summary price for all orders having discount is: %s\n", s.engine.SummaryPriceWithDiscount().StringFixed(2))
	return nil
}

func (s *Session) minimumQuantity(ctx context.Context, c *menu.Console) error {
	minQty, err := c.ReadInt("Insert minimal quantity of products in every order.")
	if err != nil {
		return err
	}
	saved, err := s.engine.SaveCustomersWithMinimumQuantity(s.outputDir, minQty)
	if err != nil {
		return err
	}
	zctx.From(ctx).Info("Saved customers",
		zap.String("path", saved.Path),
		zap.Int("count", len(saved.Customers)),
	)
	c.Printf("%d customers bought at least %d products in every order. Saved to %s\n",
		len(saved.Customers), minQty, saved.Path)
	return nil
}

func (s *Session) popularCategory(_ context.Context, c *menu.Console) error {
	category, err := s.engine.MostPopularCategory()
	if err != nil {
		return err
	}
	c.Printf("Category %s was the most popular.\n", category)
	return nil
}

func (s *Session) ordersPerMonth(_ context.Context, c *menu.Console) error {
	for _, mc := range s.engine.OrdersPerMonth() {
		c.Printf("In %s there were %d orders.\n", strings.ToUpper(mc.Month.String()), mc.Count)
	}
	return nil
}

func (s *Session) popularCategoryPerMonth(_ context.Context, c *menu.Console) error {
	for _, mc := range s.engine.MostPopularCategoryPerMonth() {
		c.Printf("In %s, %s was the most popular.\n", strings.ToUpper(mc.Month.String()), mc.Category)
	}
	return nil
}

func (s *Session) sendProducts(ctx context.Context, c *menu.Console) error {
	msgs, err := s.engine.ProductSummaryMessages(s.subject)
	if err != nil {
		return errors.Wrap(err, "render messages")
	}
	res, err := s.broadcaster.Broadcast(ctx, msgs)
	if err != nil {
		return err
	}
	c.Printf("Email with products list has been sent to %d customers.\n", res.Sent)
	for _, f := range res.Failures {
		c.Printf("Could not send to %s: %v\n", f.To, f.Err)
	}
	return nil
}
