package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/kiranamart/storefront-client/app"
	"github.com/kiranamart/storefront-client/config"
	"github.com/kiranamart/storefront-client/gateway"
	"github.com/kiranamart/storefront-client/models"
	"github.com/kiranamart/storefront-client/orders"
	"github.com/kiranamart/storefront-client/pricing"
	"github.com/kiranamart/storefront-client/session"
	"github.com/kiranamart/storefront-client/store"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	logger.Info("✅ Starting storefront client...")

	st, err := store.Open(cfg.DataFile)
	if err != nil {
		logger.Fatal("❌ Failed to open local store: ", err)
	}
	defer st.Close()

	a := app.New(cfg, st, logger)
	ctx := context.Background()
	a.Start(ctx)

	fmt.Printf("Connected to %s as %s. Type 'help' for commands.\n", cfg.APIBaseURL, a.Session.Role())
	runShell(ctx, a)
}

func runShell(ctx context.Context, a *app.App) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s] > ", a.Area())
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return
		case "help":
			printHelp()
		case "products":
			printProducts(a)
		case "categories":
			printCategories(a)
		case "search":
			a.Catalog.SetSearch(strings.Join(args, " "))
			printProducts(a)
		case "category":
			a.Catalog.SetCategory(first(args))
			printProducts(a)
		case "reload":
			if err := a.Catalog.Reload(ctx); err != nil {
				fmt.Println("error:", err)
			}
		case "add":
			if a.AddToCart(first(args)) {
				fmt.Printf("added, cart has %d items\n", a.Cart.Count())
			} else {
				fmt.Println("cannot add: unknown product or out of stock")
			}
		case "qty":
			if len(args) < 2 {
				fmt.Println("usage: qty <productId> <delta>")
				break
			}
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Println("usage: qty <productId> <delta>")
				break
			}
			a.Cart.ChangeQuantity(args[0], delta)
			printCart(a)
		case "cart":
			printCart(a)
		case "clear":
			a.Cart.Clear()
			fmt.Println("cart cleared")
		case "register":
			if len(args) < 2 {
				fmt.Println("usage: register <name> <10-digit mobile>")
				break
			}
			name := strings.Join(args[:len(args)-1], " ")
			mobile := args[len(args)-1]
			if user, err := a.Session.Register(ctx, name, mobile); err != nil {
				fmt.Println("register failed:", err)
			} else {
				fmt.Println("welcome,", user.Name)
				a.Navigate(session.AreaProducts)
			}
		case "login":
			if user, err := a.Session.Login(ctx, first(args)); err != nil {
				fmt.Println("login failed:", err)
			} else {
				fmt.Println("welcome back,", user.Name)
				a.Navigate(session.AreaProducts)
				if err := a.MyOrders.Reload(ctx); err != nil {
					fmt.Println("orders error:", err)
				}
			}
		case "admin-login":
			if len(args) < 2 {
				fmt.Println("usage: admin-login <email> <password>")
				break
			}
			if _, err := a.Session.AdminLogin(ctx, args[0], args[1]); err != nil {
				fmt.Println("admin login failed:", err)
			} else {
				a.Navigate(session.AreaAdminDashboard)
				if err := a.AdminOrders.Reload(ctx); err != nil {
					fmt.Println("admin orders error:", err)
				}
			}
		case "logout":
			a.Logout(ctx)
			fmt.Println("logged out")
		case "whoami":
			if user := a.Session.Current(); user != nil {
				fmt.Printf("%s (%s)\n", user.Name, user.Role)
			} else {
				fmt.Println("guest")
			}
		case "go":
			target := session.Area(first(args))
			landed := a.Navigate(target)
			if landed != target {
				fmt.Println("login required, redirected to auth")
			}
		case "address":
			setAddress(a, strings.Join(args, " "))
		case "pay":
			switch strings.ToLower(first(args)) {
			case "cod":
				a.Checkout.SetPaymentMethod(models.PaymentMethodCOD)
				fmt.Println("payment method:", a.Checkout.PaymentMethod())
			case "upi":
				a.Checkout.SetPaymentMethod(models.PaymentMethodUPIQR)
				fmt.Println("payment method:", a.Checkout.PaymentMethod())
			default:
				fmt.Println("usage: pay <cod|upi>")
			}
		case "checkout":
			order, err := a.Checkout.Submit(ctx)
			if err != nil {
				fmt.Println("checkout failed:", err)
				break
			}
			fmt.Printf("order %s placed, total %s\n", order.ID, pricing.FormatINR(order.Total))
		case "orders":
			printOrders(a.MyOrders.Orders())
		case "admin-orders":
			if err := a.AdminOrders.Reload(ctx); err != nil {
				fmt.Println("error:", err)
				break
			}
			printOrders(a.AdminOrders.Orders())
		case "verify":
			if err := a.AdminOrders.VerifyPayment(ctx, first(args)); err != nil {
				fmt.Println("error:", err)
			}
		case "advance":
			advanceOrder(ctx, a, first(args))
		case "mark":
			if len(args) < 2 {
				fmt.Println("usage: mark <orderId> <pending|confirmed|shipped|delivered|cancelled>")
				break
			}
			status, err := models.ParseOrderStatus(args[1])
			if err != nil {
				fmt.Println("error:", err)
				break
			}
			if err := a.AdminOrders.SetStatus(ctx, args[0], status, ""); err != nil {
				fmt.Println("error:", err)
			}
		case "pay-status":
			if len(args) < 2 {
				fmt.Println("usage: pay-status <orderId> <pending_verification|verified|failed>")
				break
			}
			status, err := models.ParsePaymentStatus(args[1])
			if err != nil {
				fmt.Println("error:", err)
				break
			}
			if err := a.AdminOrders.SetPaymentStatus(ctx, args[0], status); err != nil {
				fmt.Println("error:", err)
			}
		case "cancel":
			reason := strings.Join(rest(args), " ")
			if err := a.AdminOrders.SetStatus(ctx, first(args), models.OrderStatusCancelled, reason); err != nil {
				fmt.Println("error:", err)
			}
		case "new-category":
			if err := a.AdminCatalog.CreateCategory(ctx, strings.Join(args, " ")); err != nil {
				fmt.Println("error:", err)
			}
		case "del-category":
			if err := a.AdminCatalog.DeleteCategory(ctx, first(args)); err != nil {
				fmt.Println("error:", err)
			}
		case "new-product":
			newProduct(ctx, a, strings.Join(args, " "))
		case "del-product":
			if err := a.AdminCatalog.DeleteProduct(ctx, first(args)); err != nil {
				fmt.Println("error:", err)
			}
		case "dump":
			spew.Dump(a.Cart.Lines(), a.Checkout.Address(), a.Session.Current())
		default:
			fmt.Println("unknown command, try 'help'")
		}
	}
}

func printHelp() {
	fmt.Print(`catalog:   products | categories | search <q> | category <id|all> | reload
cart:      add <productId> | qty <productId> <delta> | cart | clear
auth:      register <name> <mobile> | login <mobile> | admin-login <email> <pass> | logout | whoami
checkout:  address <street>|<phone>|<city>|<state>|<pincode> | pay <cod|upi> | checkout
orders:    orders | admin-orders | verify <id> | advance <id> | mark <id> <status> | pay-status <id> <status> | cancel <id> [reason]
admin:     new-category <name> | del-category <id> | new-product <name>|<price>|<stock>|<categoryId> | del-product <id>
misc:      go <area> | dump | quit
`)
}

func printProducts(a *app.App) {
	counts := a.Catalog.CountsByCategory()
	for _, c := range a.Catalog.Categories() {
		fmt.Printf("  [%s] %s (%d)\n", c.ID, c.Name, counts[c.ID])
	}
	for _, p := range a.Catalog.Filtered() {
		stock := "in stock"
		if !p.InStock() {
			stock = "OUT OF STOCK"
		}
		fmt.Printf("  %s  %-24s %8s  %s\n", p.ID, p.Name, pricing.FormatINR(p.Price), stock)
	}
}

func printCategories(a *app.App) {
	counts := a.Catalog.CountsByCategory()
	for _, c := range a.Catalog.Categories() {
		fmt.Printf("  %s  %s (%d products)\n", c.ID, c.Name, counts[c.ID])
	}
}

func printCart(a *app.App) {
	for _, line := range a.Cart.Lines() {
		fmt.Printf("  %dx %-24s %s\n", line.Quantity, line.Product.Name, pricing.FormatINR(line.LineTotal()))
	}
	totals := a.Totals()
	fmt.Printf("  subtotal %s, delivery %s, total %s\n",
		pricing.FormatINR(totals.Subtotal), pricing.FormatINR(totals.DeliveryCharge), pricing.FormatINR(totals.Total))
}

func printOrders(list []models.Order) {
	if len(list) == 0 {
		fmt.Println("  no orders")
		return
	}
	for _, o := range list {
		fmt.Printf("  %s  %-10s %-20s %s\n", o.ID, o.Status, o.PaymentStatus, pricing.FormatINR(o.Total))
	}
}

func setAddress(a *app.App, raw string) {
	parts := strings.Split(raw, "|")
	if len(parts) != 5 {
		fmt.Println("usage: address <street>|<phone>|<city>|<state>|<pincode>")
		return
	}
	a.Checkout.SetAddress(models.DeliveryAddress{
		Street:     strings.TrimSpace(parts[0]),
		Phone:      strings.TrimSpace(parts[1]),
		City:       strings.TrimSpace(parts[2]),
		State:      strings.TrimSpace(parts[3]),
		PostalCode: strings.TrimSpace(parts[4]),
	})
	fmt.Println("address saved")
}

func advanceOrder(ctx context.Context, a *app.App, orderID string) {
	order, found := a.AdminOrders.Find(orderID)
	if !found {
		fmt.Println("unknown order")
		return
	}
	next, ok := orders.NextStatus(order.Status)
	if !ok {
		fmt.Println("order cannot advance from", order.Status)
		return
	}
	if err := a.AdminOrders.SetStatus(ctx, orderID, next, ""); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("order marked", next)
}

func newProduct(ctx context.Context, a *app.App, raw string) {
	parts := strings.Split(raw, "|")
	if len(parts) != 4 {
		fmt.Println("usage: new-product <name>|<price>|<stock>|<categoryId>")
		return
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		fmt.Println("invalid price")
		return
	}
	stock, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		fmt.Println("invalid stock")
		return
	}
	input := gateway.ProductInput{
		Name:       strings.TrimSpace(parts[0]),
		Price:      price,
		Stock:      &stock,
		CategoryID: strings.TrimSpace(parts[3]),
	}
	if err := a.AdminCatalog.CreateProduct(ctx, input); err != nil {
		fmt.Println("error:", err)
	}
}

func first(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func rest(args []string) []string {
	if len(args) < 2 {
		return nil
	}
	return args[1:]
}
