package services

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"foodnow-api/config"
	"foodnow-api/logger"
	"foodnow-api/models"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// newTestDB opens a private in-memory database with the schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:services_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type sentMail struct {
	Kind string
	To   string
	Body string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
}

func (n *recordingNotifier) record(kind, to, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{Kind: kind, To: to, Body: body})
}

func (n *recordingNotifier) PasswordReset(to, name, link string) { n.record("reset", to, link) }
func (n *recordingNotifier) ApplicationReceived(to, name, restaurant string) {
	n.record("received", to, restaurant)
}
func (n *recordingNotifier) ApplicationApproved(to, name, restaurant string) {
	n.record("approved", to, restaurant)
}
func (n *recordingNotifier) ApplicationRejected(to, name, restaurant, reason string) {
	n.record("rejected", to, reason)
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.sent))
	for i, m := range n.sent {
		out[i] = m.Kind
	}
	return out
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(userID uint, email, role string) (string, error) {
	return fmt.Sprintf("token-%d-%s", userID, role), nil
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	u := &models.User{Name: email, Email: email, PasswordHash: string(hash), Role: role}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// createRestaurant makes an owner with a restaurant and one available item
func createRestaurant(t *testing.T, db *gorm.DB, ownerEmail string) (*models.User, *models.Restaurant, *models.FoodItem) {
	t.Helper()
	owner := createUser(t, db, ownerEmail, models.RoleRestaurantOwner)
	rest := &models.Restaurant{OwnerID: owner.ID, Name: "Kitchen of " + ownerEmail}
	if err := db.Create(rest).Error; err != nil {
		t.Fatal(err)
	}
	item := &models.FoodItem{RestaurantID: rest.ID, Name: "Margherita", Price: 12.5, Available: true}
	if err := db.Create(item).Error; err != nil {
		t.Fatal(err)
	}
	return owner, rest, item
}

func createOrder(t *testing.T, db *gorm.DB, customerID, restaurantID uint, status models.OrderStatus) *models.Order {
	t.Helper()
	o := &models.Order{
		CustomerID:      customerID,
		RestaurantID:    restaurantID,
		Status:          status,
		TotalPrice:      25,
		DeliveryAddress: "1 Main St",
	}
	if err := db.Create(o).Error; err != nil {
		t.Fatal(err)
	}
	return o
}

func alwaysPay() bool { return true }
func neverPay() bool { return false }
func quietLog() *logrus.Logger { return logger.Discard() }

func wantErr(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("got error %v, want %v", err, target)
	}
}
