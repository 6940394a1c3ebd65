package authsvc

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	authdto "nova_crm/internal/api/auth/dto"
	models "nova_crm/internal/api/auth/models"
	basesvc "nova_crm/internal/api/base/service"
	"nova_crm/internal/common"
	"nova_crm/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 12
	otpTTL     = 10 * time.Minute
)

// UserService manages user accounts.
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService creates a UserService bound to the users collection.
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// GenerateOTP returns a random 6-digit verification code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// NormalizeEmail lowercases and trims an email address. All lookups go
// through this so the unique index on email is effectively case insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newUnverifiedUser builds the account document a registration inserts. New
// accounts start INACTIVE until the email is verified.
func newUnverifiedUser(input *authdto.RegisterInput, passwordHash, otp string, otpExpiresAt int64) models.User {
	return models.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        NormalizeEmail(input.Email),
		PasswordHash: passwordHash,
		Role:         models.RoleEmployee,
		Status:       models.StatusInactive,
		IsVerified:   false,
		OTPCode:      otp,
		OTPExpiresAt: otpExpiresAt,
	}
}

// activationUpdate marks an account verified and active and clears its OTP.
func activationUpdate() basesvc.UpdateData {
	return basesvc.UpdateData{
		Set:   map[string]interface{}{"isVerified": true, "status": models.StatusActive},
		Unset: map[string]interface{}{"otpCode": "", "otpExpiresAt": ""},
	}
}

// Register creates an unverified account with a fresh OTP. Duplicate emails
// are rejected with a conflict error.
func (s *UserService) Register(ctx context.Context, input *authdto.RegisterInput) (models.User, string, error) {
	var zero models.User

	email := NormalizeEmail(input.Email)

	exists, err := s.DocumentExists(ctx, bson.M{"email": email})
	if err != nil {
		return zero, "", err
	}
	if exists {
		return zero, "", common.NewError(common.ErrCodeDatabaseQuery, "Email is already registered", common.StatusConflict, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return zero, "", common.NewError(common.ErrCodeInternalServer, "Failed to hash password", common.StatusInternalServerError, err)
	}

	otp, err := GenerateOTP()
	if err != nil {
		return zero, "", common.NewError(common.ErrCodeInternalServer, "Failed to generate verification code", common.StatusInternalServerError, err)
	}

	user := newUnverifiedUser(input, string(hash), otp, time.Now().Add(otpTTL).UnixMilli())

	created, err := s.InsertOne(ctx, user)
	if err != nil {
		return zero, "", err
	}

	return created, otp, nil
}

// VerifyEmail checks the OTP for an account and marks it verified.
func (s *UserService) VerifyEmail(ctx context.Context, email, otp string) (models.User, error) {
	var zero models.User

	user, err := s.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, common.ErrOTPInvalid
		}
		return zero, err
	}

	if user.IsVerified {
		return user, nil
	}
	if user.OTPCode == "" || user.OTPCode != otp || time.Now().UnixMilli() > user.OTPExpiresAt {
		return zero, common.ErrOTPInvalid
	}

	return s.UpdateById(ctx, user.ID, activationUpdate())
}

// Login verifies the credentials and stamps the user online. Unknown email
// and wrong password both surface as ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (models.User, error) {
	var zero models.User

	user, err := s.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, common.ErrInvalidCredentials
		}
		return zero, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return zero, common.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return zero, common.ErrNotVerified
	}
	if user.Status != models.StatusActive {
		return zero, common.ErrUserInactive
	}

	return s.UpdateById(ctx, user.ID, basesvc.UpdateData{
		Set: map[string]interface{}{
			"isOnline": true,
			"lastSeen": time.Now().UnixMilli(),
		},
	})
}

// Logout stamps the user offline. Best effort, the session token simply
// expires on its own.
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.UpdateById(ctx, userID, basesvc.UpdateData{
		Set: map[string]interface{}{
			"isOnline": false,
			"lastSeen": time.Now().UnixMilli(),
		},
	})
	return err
}

// UpdateProfile applies the self-service allow-list update.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input *authdto.ProfileUpdateInput) (models.User, error) {
	set := map[string]interface{}{}
	if input.FirstName != nil {
		set["firstName"] = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		set["lastName"] = strings.TrimSpace(*input.LastName)
	}
	if input.Avatar != nil {
		set["avatar"] = *input.Avatar
	}
	if input.DarkMode != nil {
		set["darkMode"] = *input.DarkMode
	}

	if len(set) == 0 {
		return s.FindOneById(ctx, userID)
	}

	return s.UpdateById(ctx, userID, basesvc.UpdateData{Set: set})
}

// AdminUpdate applies the admin allow-list update. Demoting or deactivating
// the last active admin is refused.
func (s *UserService) AdminUpdate(ctx context.Context, userID primitive.ObjectID, input *authdto.AdminUserUpdateInput) (models.User, error) {
	var zero models.User

	target, err := s.FindOneById(ctx, userID)
	if err != nil {
		return zero, err
	}

	set := map[string]interface{}{}
	if input.FirstName != nil {
		set["firstName"] = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		set["lastName"] = strings.TrimSpace(*input.LastName)
	}
	if input.Role != nil {
		if !models.ValidRole(*input.Role) {
			return zero, common.NewError(common.ErrCodeValidationInput, "Invalid role", common.StatusBadRequest, nil)
		}
		set["role"] = *input.Role
	}
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			return zero, common.NewError(common.ErrCodeValidationInput, "Invalid status", common.StatusBadRequest, nil)
		}
		set["status"] = *input.Status
	}

	losesAdmin := target.Role == models.RoleAdmin &&
		((input.Role != nil && *input.Role != models.RoleAdmin) ||
			(input.Status != nil && *input.Status != models.StatusActive))
	if losesAdmin {
		others, err := s.CountDocuments(ctx, bson.M{
			"_id":    bson.M{"$ne": target.ID},
			"role":   models.RoleAdmin,
			"status": models.StatusActive,
		})
		if err != nil {
			return zero, err
		}
		if others == 0 {
			return zero, common.NewError(common.ErrCodeBusinessState, "Cannot remove the last active admin", common.StatusBadRequest, nil)
		}
	}

	if len(set) == 0 {
		return target, nil
	}

	return s.UpdateById(ctx, userID, basesvc.UpdateData{Set: set})
}

// ListUsers returns all users, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, bson.D{}, opts)
}
