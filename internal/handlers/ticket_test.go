package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fixtrack/repair-shop-api/internal/constants"
	"github.com/fixtrack/repair-shop-api/internal/database"
	"github.com/fixtrack/repair-shop-api/internal/dto"
	"github.com/fixtrack/repair-shop-api/internal/models"
	"github.com/fixtrack/repair-shop-api/internal/repository"
	"github.com/fixtrack/repair-shop-api/internal/services"
)

// TicketHandlerTestSuite defines the test suite for TicketHandler
type TicketHandlerTestSuite struct {
	suite.Suite
	db          *gorm.DB
	handler     *TicketHandler
	userService *services.UserService
}

// SetupTest runs before each test
func (suite *TicketHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Ticket{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	ticketRepo := repository.NewTicketRepository(suite.db)
	suite.handler = NewTicketHandler(services.NewTicketService(ticketRepo, userRepo))
	suite.userService = services.NewUserService(userRepo)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TicketHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *TicketHandlerTestSuite) createTestUser(name, email string, role models.UserRole) *models.User {
	user := &models.User{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TicketHandlerTestSuite) createTestTicket(title string, assignee *models.User) *models.Ticket {
	ticket := &models.Ticket{
		Title:         title,
		Description:   "Test Description",
		Status:        models.TicketStatusNew,
		CustomerName:  "Test Customer",
		CustomerPhone: "(555) 000-0000",
		ItemsReceived: "Test item",
	}
	if assignee != nil {
		name := assignee.Name
		ticket.AssigneeID = &assignee.ID
		ticket.AssigneeName = &name
	}
	suite.db.Create(ticket)
	return ticket
}

// Helper function to create an authenticated context
func (suite *TicketHandlerTestSuite) createAuthContext(method, url string, body []byte, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if userID != "" {
		c.Set(constants.ContextKeyUserID, userID)
	}

	return c, w
}

func (suite *TicketHandlerTestSuite) decodeTicket(w *httptest.ResponseRecorder) dto.TicketDTO {
	var ticket dto.TicketDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &ticket))
	return ticket
}

func (suite *TicketHandlerTestSuite) TestCreateTicket() {
	owner := suite.createTestUser("John Doe", "owner@example.com", models.RoleOwner)
	worker := suite.createTestUser("Jane Smith", "worker@example.com", models.RoleWorker)

	body, err := json.Marshal(map[string]any{
		"title":          "Laptop Screen Repair",
		"description":    "Cracked screen needs replacement",
		"customer_name":  "Michael Johnson",
		"customer_phone": "(555) 123-4567",
		"items_received": "Dell XPS 13 laptop, charger",
		"assignee_id":    worker.ID,
	})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext(http.MethodPost, "/api/tickets", body, owner.ID)
	suite.handler.CreateTicket(c)

	suite.Equal(http.StatusCreated, w.Code)

	ticket := suite.decodeTicket(w)
	suite.Equal(models.TicketStatusNew, ticket.Status)
	suite.Require().NotNil(ticket.AssigneeName)
	suite.Equal("Jane Smith", *ticket.AssigneeName)
	suite.True(ticket.CreatedAt.Equal(ticket.UpdatedAt), "created and updated timestamps must match at creation")
}

func (suite *TicketHandlerTestSuite) TestCreateTicketUnauthenticated() {
	body, err := json.Marshal(map[string]any{
		"title":          "Laptop Screen Repair",
		"description":    "Cracked screen",
		"customer_name":  "Michael Johnson",
		"customer_phone": "(555) 123-4567",
		"items_received": "Laptop",
	})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext(http.MethodPost, "/api/tickets", body, "")
	suite.handler.CreateTicket(c)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TicketHandlerTestSuite) TestCreateTicketMissingFields() {
	owner := suite.createTestUser("John Doe", "owner@example.com", models.RoleOwner)

	body, err := json.Marshal(map[string]any{
		"title": "Laptop Screen Repair",
	})
	suite.Require().NoError(err)

	c, w := suite.createAuthContext(http.MethodPost, "/api/tickets", body, owner.ID)
	suite.handler.CreateTicket(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TicketHandlerTestSuite) TestGetTicketNotFound() {
	owner := suite.createTestUser("John Doe", "owner@example.com", models.RoleOwner)

	c, w := suite.createAuthContext(http.MethodGet, "/api/tickets/unknown", nil, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: "does-not-exist"}}
	suite.handler.GetTicket(c)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TicketHandlerTestSuite) TestStatusLifecycle() {
	owner := suite.createTestUser("John Doe", "owner@example.com", models.RoleOwner)
	ticket := suite.createTestTicket("Desktop PC Not Booting", nil)

	afterCreate := ticket.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	body, _ := json.Marshal(map[string]string{"status": "in-progress"})
	c, w := suite.createAuthContext(http.MethodPost, "/api/tickets/"+ticket.ID+"/status", body, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: ticket.ID}}
	suite.handler.UpdateTicketStatus(c)

	suite.Equal(http.StatusOK, w.Code)
	inProgress := suite.decodeTicket(w)
	suite.Equal(models.TicketStatusInProgress, inProgress.Status)
	suite.True(inProgress.UpdatedAt.After(afterCreate))

	time.Sleep(5 * time.Millisecond)
	body, _ = json.Marshal(map[string]string{"status": "done"})
	c, w = suite.createAuthContext(http.MethodPost, "/api/tickets/"+ticket.ID+"/status", body, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: ticket.ID}}
	suite.handler.UpdateTicketStatus(c)

	suite.Equal(http.StatusOK, w.Code)
	done := suite.decodeTicket(w)
	suite.Equal(models.TicketStatusDone, done.Status)
	suite.True(done.UpdatedAt.After(inProgress.UpdatedAt))
}

func (suite *TicketHandlerTestSuite) TestStatusIllegalTransition() {
	owner := suite.createTestUser("John Doe", "owner@example.com", models.RoleOwner)
	ticket := suite.createTestTicket("Virus Removal", nil)

	// new -> done skips a step
	body, _ := json.Marshal(map[string]string{"status": "done"})
	c, w := suite.createAuthContext(http.MethodPost, "/api/tickets/"+ticket.ID+"/status", body, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: ticket.ID}}
	suite.handler.UpdateTicketStatus(c)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TicketHandlerTestSuite) TestStatusUnknownValue() {
	owner := suite.createTestUser("John Doe", "owner@example.com", models.RoleOwner)
	ticket := suite.createTestTicket("Virus Removal", nil)

	body, _ := json.Marshal(map[string]string{"status": "archived"})
	c, w := suite.createAuthContext(http.MethodPost, "/api/tickets/"+ticket.ID+"/status", body, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: ticket.ID}}
	suite.handler.UpdateTicketStatus(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TicketHandlerTestSuite) TestStatusNotFound() {
	owner := suite.createTestUser("John Doe", "owner@example.com", models.RoleOwner)

	body, _ := json.Marshal(map[string]string{"status": "in-progress"})
	c, w := suite.createAuthContext(http.MethodPost, "/api/tickets/missing/status", body, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	suite.handler.UpdateTicketStatus(c)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TicketHandlerTestSuite) TestUpdateTicketClearAssignee() {
	owner := suite.createTestUser("John Doe", "owner@example.com", models.RoleOwner)
	worker := suite.createTestUser("Jane Smith", "worker@example.com", models.RoleWorker)
	ticket := suite.createTestTicket("Laptop Screen Repair", worker)

	body := []byte(`{"assignee_id": null}`)
	c, w := suite.createAuthContext(http.MethodPatch, "/api/tickets/"+ticket.ID, body, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: ticket.ID}}
	suite.handler.UpdateTicket(c)

	suite.Equal(http.StatusOK, w.Code)
	updated := suite.decodeTicket(w)
	suite.Nil(updated.AssigneeID)
	suite.Nil(updated.AssigneeName)
}

func (suite *TicketHandlerTestSuite) TestUpdateTicketReassign() {
	owner := suite.createTestUser("John Doe", "owner@example.com", models.RoleOwner)
	worker := suite.createTestUser("Jane Smith", "worker@example.com", models.RoleWorker)
	other := suite.createTestUser("Ann Lee", "ann@example.com", models.RoleWorker)
	ticket := suite.createTestTicket("Laptop Screen Repair", worker)

	body, _ := json.Marshal(map[string]any{"assignee_id": other.ID})
	c, w := suite.createAuthContext(http.MethodPatch, "/api/tickets/"+ticket.ID, body, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: ticket.ID}}
	suite.handler.UpdateTicket(c)

	suite.Equal(http.StatusOK, w.Code)
	updated := suite.decodeTicket(w)
	suite.Require().NotNil(updated.AssigneeName)
	suite.Equal("Ann Lee", *updated.AssigneeName)
}

func (suite *TicketHandlerTestSuite) TestUpdateTicketUnknownAssigneeKeepsName() {
	owner := suite.createTestUser("John Doe", "owner@example.com", models.RoleOwner)
	worker := suite.createTestUser("Jane Smith", "worker@example.com", models.RoleWorker)
	ticket := suite.createTestTicket("Laptop Screen Repair", worker)

	body, _ := json.Marshal(map[string]any{"assignee_id": "no-such-user"})
	c, w := suite.createAuthContext(http.MethodPatch, "/api/tickets/"+ticket.ID, body, owner.ID)
	c.Params = gin.Params{{Key: "id", Value: ticket.ID}}
	suite.handler.UpdateTicket(c)

	suite.Equal(http.StatusOK, w.Code)
	updated := suite.decodeTicket(w)
	suite.Require().NotNil(updated.AssigneeID)
	suite.Equal("no-such-user", *updated.AssigneeID)
	// The cached name survives an unresolvable assignee.
	suite.Require().NotNil(updated.AssigneeName)
	suite.Equal("Jane Smith", *updated.AssigneeName)
}

func (suite *TicketHandlerTestSuite) TestListTicketsByAssignee() {
	owner := suite.createTestUser("John Doe", "owner@example.com", models.RoleOwner)
	worker := suite.createTestUser("Jane Smith", "worker@example.com", models.RoleWorker)

	first := suite.createTestTicket("First", worker)
	suite.createTestTicket("Unassigned", nil)
	second := suite.createTestTicket("Second", worker)

	c, w := suite.createAuthContext(http.MethodGet, "/api/tickets?assignee_id="+worker.ID, nil, owner.ID)
	suite.handler.ListTickets(c)

	suite.Equal(http.StatusOK, w.Code)

	var response dto.TicketListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Tickets, 2)
	suite.Equal(first.ID, response.Tickets[0].ID)
	suite.Equal(second.ID, response.Tickets[1].ID)
}

func (suite *TicketHandlerTestSuite) TestStaleAssigneeNameAfterUserDelete() {
	suite.createTestUser("John Doe", "owner@example.com", models.RoleOwner)
	ann, err := suite.userService.CreateUser(services.CreateUserInput{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "supersecret",
		Role:     models.RoleWorker,
	})
	suite.Require().NoError(err)

	ticket := suite.createTestTicket("Phone Battery Swap", ann)

	body, _ := json.Marshal(map[string]string{"status": "in-progress"})
	c, w := suite.createAuthContext(http.MethodPost, "/api/tickets/"+ticket.ID+"/status", body, ann.ID)
	c.Params = gin.Params{{Key: "id", Value: ticket.ID}}
	suite.handler.UpdateTicketStatus(c)
	suite.Equal(http.StatusOK, w.Code)

	suite.Require().NoError(suite.userService.DeleteUser(ann.ID))

	c, w = suite.createAuthContext(http.MethodGet, "/api/tickets/"+ticket.ID, nil, "")
	c.Params = gin.Params{{Key: "id", Value: ticket.ID}}
	suite.handler.GetTicket(c)

	suite.Equal(http.StatusOK, w.Code)
	fetched := suite.decodeTicket(w)
	suite.Equal(models.TicketStatusInProgress, fetched.Status)
	suite.Require().NotNil(fetched.AssigneeName)
	suite.Equal("Ann", *fetched.AssigneeName)
}

// TestTicketHandlerTestSuite runs the test suite
func TestTicketHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TicketHandlerTestSuite))
}
