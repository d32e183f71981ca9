package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"artisan_market/internal/apperr"
	"artisan_market/internal/middleware"
	"artisan_market/internal/models"
	"artisan_market/internal/repository"
)

// SellerLoginPolicy decides whether a seller whose application is not yet
// active may log in.
type SellerLoginPolicy int

const (
	// AllowAnyStatus issues a token for pending and rejected sellers too and
	// reports the status so the dashboard can show the review state.
	AllowAnyStatus SellerLoginPolicy = iota
	// RequireActive refuses login with 403 until the application is active.
	RequireActive
)

const (
	msgInvalidCredentials = "Invalid credentials. Please check your email and password."
	msgServerError        = "Server error"
)

// UserView is the user object returned to clients. Role is always set.
type UserView struct {
	ID       uuid.UUID           `json:"id"`
	Name     string              `json:"name"`
	Email    string              `json:"email"`
	Role     models.Role         `json:"role"`
	SellerID *uuid.UUID          `json:"sellerId,omitempty"`
	Status   models.SellerStatus `json:"status,omitempty"`
}

type Session struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type Registration struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SellerRegistration struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Business string `json:"business" binding:"required"`
	Password string `json:"password" binding:"required"`
	Products string `json:"products"`
}

const (
	msgMissingFields       = "Missing fields"
	msgMissingCredentials  = "Please provide email and password"
	msgMissingSellerFields = "Missing required fields: Name, Email, Business Name, or Password."
)

// AuthService implements the registration and login flow of every portal.
type AuthService struct {
	store        repository.Store
	tokens       *middleware.TokenService
	bcryptCost   int
	sellerPolicy SellerLoginPolicy
}

func NewAuthService(store repository.Store, tokens *middleware.TokenService, bcryptCost int, policy SellerLoginPolicy) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{store: store, tokens: tokens, bcryptCost: bcryptCost, sellerPolicy: policy}
}

// Register creates a standard customer account.
func (s *AuthService) Register(ctx context.Context, in Registration) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validate(in, msgMissingFields); err != nil {
		return nil, err
	}

	if existing, err := s.findUser(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		if existing.Role == models.RoleUser {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, apperr.Conflict("This email is already registered under a different portal. Please log in through the correct portal or use a different email.")
	}

	user, err := s.createUser(ctx, s.store, in.Name, in.Email, in.Password, models.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.session(user, nil)
}

// Login is the customer portal. Other roles are pointed to their own portal.
func (s *AuthService) Login(ctx context.Context, in Credentials) (*Session, error) {
	user, err := s.authenticate(ctx, in)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleUser {
		return nil, apperr.Authentication(wrongPortal(user.Role))
	}
	return s.session(user, nil)
}

// RegisterSeller creates the seller account and its pending application in
// one transaction.
func (s *AuthService) RegisterSeller(ctx context.Context, in SellerRegistration) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Business = strings.TrimSpace(in.Business)
	if err := validate(in, msgMissingSellerFields); err != nil {
		return nil, err
	}

	if existing, err := s.findUser(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		if existing.Role == models.RoleSeller {
			return nil, apperr.Conflict("This email is already registered as a seller. Please log in.")
		}
		return nil, apperr.Conflict("This email is already registered as a " + string(existing.Role) + " account. Please use a different email for seller registration.")
	}

	var (
		user   *models.User
		seller *models.Seller
	)
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		user, err = s.createUser(ctx, tx, in.Name, in.Email, in.Password, models.RoleSeller)
		if err != nil {
			return err
		}
		seller = &models.Seller{
			UserID:         user.ID,
			Name:           in.Name,
			Email:          in.Email,
			Phone:          strings.TrimSpace(in.Phone),
			BusinessName:   in.Business,
			ProductsDesc:   strings.TrimSpace(in.Products),
			Status:         models.SellerPending,
			DateRegistered: user.CreatedAt,
		}
		if err := tx.CreateSeller(ctx, seller); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperr.Conflict("A seller application already exists for this email.")
			}
			return apperr.Internal(err, "Server error during registration.")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"seller_id": seller.ID, "email": seller.Email}).Info("seller application submitted")
	return s.session(user, seller)
}

// SellerLogin admits sellers and admins. What happens to sellers whose
// application is not active depends on the configured SellerLoginPolicy.
func (s *AuthService) SellerLogin(ctx context.Context, in Credentials) (*Session, error) {
	user, err := s.authenticate(ctx, in)
	if err != nil {
		return nil, err
	}
	switch user.Role {
	case models.RoleAdmin:
		return s.session(user, nil)
	case models.RoleSeller:
	default:
		return nil, apperr.Authentication(wrongPortal(user.Role))
	}

	seller, err := s.sellerFor(ctx, user)
	if err != nil {
		return nil, err
	}
	if s.sellerPolicy == RequireActive && seller.Status != models.SellerActive {
		if seller.Status == models.SellerRejected {
			return nil, apperr.Authorization("Your seller application was rejected.")
		}
		return nil, apperr.Authorization("Your seller application is pending review.")
	}
	return s.session(user, seller)
}

// RegisterReseller creates a reseller account. It does not log the caller in.
func (s *AuthService) RegisterReseller(ctx context.Context, in Registration) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validate(in, msgMissingFields); err != nil {
		return err
	}
	if existing, err := s.findUser(ctx, in.Email); err != nil {
		return err
	} else if existing != nil {
		return apperr.Conflict("Email already in use").WithStatus(http.StatusBadRequest)
	}
	_, err := s.createUser(ctx, s.store, in.Name, in.Email, in.Password, models.RoleReseller)
	if apperr.IsKind(err, apperr.KindConflict) {
		return apperr.Conflict("Email already in use").WithStatus(http.StatusBadRequest)
	}
	return err
}

// ResellerLogin admits only resellers; a correct password on another
// account type is forbidden rather than unauthenticated.
func (s *AuthService) ResellerLogin(ctx context.Context, in Credentials) (*Session, error) {
	user, err := s.authenticate(ctx, in)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleReseller {
		return nil, apperr.Authorization(wrongPortal(user.Role))
	}
	return s.session(user, nil)
}

// DeliveryLogin is the order fulfilment portal for admin and delivery staff.
func (s *AuthService) DeliveryLogin(ctx context.Context, in Credentials) (*Session, error) {
	user, err := s.authenticate(ctx, in)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleAdmin && user.Role != models.RoleDelivery {
		return nil, apperr.Authentication(wrongPortal(user.Role))
	}
	return s.session(user, nil)
}

// Profile returns the stored account behind a token.
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	user, err := s.store.FindUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("User not found")
	} else if err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	var seller *models.Seller
	if user.Role == models.RoleSeller {
		if seller, err = s.sellerFor(ctx, user); err != nil && !apperr.IsKind(err, apperr.KindConflict) {
			return nil, err
		}
	}
	view := newUserView(user, seller)
	return &view, nil
}

// CreateStaff provisions an admin or delivery account. There is no public
// registration for these roles.
func (s *AuthService) CreateStaff(ctx context.Context, in Registration, role models.Role) (*models.User, error) {
	if role != models.RoleAdmin && role != models.RoleDelivery {
		return nil, apperr.Validation("staff role must be admin or delivery")
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validate(in, msgMissingFields); err != nil {
		return nil, err
	}
	return s.createUser(ctx, s.store, in.Name, in.Email, in.Password, role)
}

func (s *AuthService) authenticate(ctx context.Context, in Credentials) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate(in, msgMissingCredentials); err != nil {
		return nil, err
	}
	user, err := s.findUser(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Authentication(msgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperr.Authentication(msgInvalidCredentials)
	}
	return user, nil
}

// sellerFor finds the application paired with a seller account. Accounts
// created before applications carried a user id are matched by email.
func (s *AuthService) sellerFor(ctx context.Context, user *models.User) (*models.Seller, error) {
	seller, err := s.store.FindSellerByUserID(ctx, user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		seller, err = s.store.FindSellerByEmail(ctx, user.Email)
	}
	if errors.Is(err, repository.ErrNotFound) {
		logrus.WithField("user_id", user.ID).Warn("seller account without seller application")
		return nil, apperr.Conflict("Seller account exists but no seller application was found. Please contact support.")
	}
	if err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	return seller, nil
}

func (s *AuthService) findUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, store repository.Users, name, email, password string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, apperr.Internal(err, msgServerError)
	}
	user := &models.User{Name: name, Email: email, PasswordHash: string(hash), Role: role}
	if err := store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, apperr.Internal(err, msgServerError)
	}
	return user, nil
}

func (s *AuthService) session(user *models.User, seller *models.Seller) (*Session, error) {
	var sellerID *uuid.UUID
	if seller != nil {
		sellerID = &seller.ID
	}
	token, err := s.tokens.Issue(user, sellerID)
	if err != nil {
		return nil, apperr.Internal(err, "could not generate token")
	}
	return &Session{Token: token, User: newUserView(user, seller)}, nil
}

func newUserView(user *models.User, seller *models.Seller) UserView {
	v := UserView{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
	if seller != nil {
		id := seller.ID
		v.SellerID = &id
		v.Status = seller.Status
	}
	return v
}

func wrongPortal(role models.Role) string {
	switch role {
	case models.RoleUser:
		return "This account is a customer account. Please use the customer login."
	case models.RoleSeller:
		return "Invalid credentials or incorrect login portal. Please use the seller login."
	case models.RoleReseller:
		return "Invalid credentials or incorrect login portal. Please use the reseller login."
	case models.RoleAdmin:
		return "Invalid credentials or incorrect login portal. Please use the seller or delivery login."
	case models.RoleDelivery:
		return "Invalid credentials or incorrect login portal. Please use the delivery login."
	}
	return msgInvalidCredentials
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
