package store

import (
	"time"

	"github.com/Luismorlan/chirper/auth"
	"github.com/Luismorlan/chirper/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUserInput carries everything needed to register an account with
// its profile in one shot.
type CreateUserInput struct {
	Username string `validate:"required,max=30"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`

	Bio               string `validate:"max=160"`
	Location          string `validate:"max=30"`
	Website           string `validate:"omitempty,url"`
	BirthDate         *time.Time
	Picture           string
	BackgroundPicture string
}

// CreateUser registers a new account. Username and email must be unique
// across all users; a clash surfaces as DuplicateIdentity. The unique
// indexes are the authority, the lookup below only exists for a nicer
// message.
func (s *Store) CreateUser(input CreateUserInput) (*model.User, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&model.User{}).
		Where("username = ? OR email = ?", input.Username, input.Email).
		Count(&count)
	if count > 0 {
		return nil, model.NewError(model.ErrDuplicateIdentity, "username or email already taken")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, model.NewInternalError(err)
	}

	user := model.User{
		Id:           uuid.New().String(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		IsActive:     true,
	}

	images := model.ProfileImage{
		Id:                uuid.New().String(),
		Picture:           input.Picture,
		BackgroundPicture: input.BackgroundPicture,
	}
	profile := model.Profile{
		Id:       uuid.New().String(),
		Bio:      input.Bio,
		Location: input.Location,
		Website:  input.Website,
		ImagesID: &images.Id,
	}
	if input.BirthDate != nil {
		profile.BirthDate = *input.BirthDate
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&images).Error; err != nil {
			return err
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		user.ProfileID = &profile.Id
		return tx.Create(&user).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return nil, model.NewError(model.ErrDuplicateIdentity, "username or email already taken")
		}
		return nil, model.NewInternalError(err)
	}

	profile.Images = &images
	user.Profile = &profile
	return &user, nil
}

// Authenticate resolves (email, password) to the stored user. Unknown
// email, wrong password and deactivated accounts all collapse into
// InvalidCredentials so the error doesn't leak which part failed.
func (s *Store) Authenticate(email, password string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, model.NewError(model.ErrInvalidCredentials, "invalid credentials")
	}
	if !user.IsActive {
		return nil, model.NewError(model.ErrInvalidCredentials, "invalid credentials")
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, model.NewError(model.ErrInvalidCredentials, "invalid credentials")
	}
	return &user, nil
}

func (s *Store) GetUser(id string) (*model.User, error) {
	var user model.User
	if err := s.db.Preload("Profile.Images").Where("id = ?", id).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, model.NewNotFoundError("user", id)
		}
		return nil, model.NewInternalError(err)
	}
	return &user, nil
}

// ListUsers returns all users, newest account first.
func (s *Store) ListUsers() ([]model.User, error) {
	var users []model.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, model.NewInternalError(err)
	}
	return users, nil
}

// Follow adds the directed edge follower -> target. Fails
// AlreadyFollowing when the edge exists. A user following itself is not
// rejected, matching the historical behavior.
func (s *Store) Follow(followerID, targetID string) error {
	if _, err := s.GetUser(followerID); err != nil {
		return err
	}
	if _, err := s.GetUser(targetID); err != nil {
		return err
	}

	var count int64
	s.db.Model(&model.UserFollow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, targetID).
		Count(&count)
	if count > 0 {
		return model.NewError(model.ErrAlreadyFollowing, "already following this user")
	}

	edge := model.UserFollow{FollowerID: followerID, FolloweeID: targetID}
	if err := s.db.Create(&edge).Error; err != nil {
		if isDuplicateKey(err) {
			return model.NewError(model.ErrAlreadyFollowing, "already following this user")
		}
		return model.NewInternalError(err)
	}
	return nil
}

// Unfollow removes the edge, failing NotFollowing when it isn't there.
func (s *Store) Unfollow(followerID, targetID string) error {
	if _, err := s.GetUser(targetID); err != nil {
		return err
	}

	res := s.db.Where("follower_id = ? AND followee_id = ?", followerID, targetID).
		Delete(&model.UserFollow{})
	if res.Error != nil {
		return model.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return model.NewError(model.ErrNotFollowing, "not following this user")
	}
	return nil
}

// Following lists the users followerID follows, in edge insertion order.
func (s *Store) Following(followerID string) ([]model.User, error) {
	var users []model.User
	err := s.db.Model(&model.User{}).
		Joins("JOIN user_follows uf ON uf.followee_id = users.id").
		Where("uf.follower_id = ?", followerID).
		Order("uf.created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, model.NewInternalError(err)
	}
	return users, nil
}

// Followers lists the users following followeeID, in edge insertion order.
func (s *Store) Followers(followeeID string) ([]model.User, error) {
	var users []model.User
	err := s.db.Model(&model.User{}).
		Joins("JOIN user_follows uf ON uf.follower_id = users.id").
		Where("uf.followee_id = ?", followeeID).
		Order("uf.created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, model.NewInternalError(err)
	}
	return users, nil
}

// Counts are always computed from the edge rows, never cached.

func (s *Store) FollowingCount(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&model.UserFollow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

func (s *Store) FollowersCount(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&model.UserFollow{}).Where("followee_id = ?", userID).Count(&count).Error
	return count, err
}

// follows reports whether the directed edge a -> b exists.
func (s *Store) follows(followerID, followeeID string) bool {
	var count int64
	s.db.Model(&model.UserFollow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count)
	return count > 0
}

// DeactivateUser turns the account off; an inactive account cannot
// authenticate. Deactivating twice is a validation failure.
func (s *Store) DeactivateUser(userID string) (*model.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, model.NewValidationError("user already deactivated")
	}
	user.IsActive = false
	if err := s.db.Model(user).Update("is_active", false).Error; err != nil {
		return nil, model.NewInternalError(err)
	}
	return user, nil
}

func (s *Store) ActivateUser(userID string) (*model.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user.IsActive {
		return nil, model.NewValidationError("user already activated")
	}
	user.IsActive = true
	if err := s.db.Model(user).Update("is_active", true).Error; err != nil {
		return nil, model.NewInternalError(err)
	}
	return user, nil
}

// ChangePassword rotates the password after checking the old one and
// the confirmation match.
func (s *Store) ChangePassword(userID, oldPassword, newPassword, confirm string) error {
	if newPassword != confirm {
		return model.NewValidationError("password fields didn't match")
	}
	if len(newPassword) < 8 {
		return model.NewValidationError("password must be at least 8 characters")
	}

	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}
	if err := auth.CheckPassword(user.PasswordHash, oldPassword); err != nil {
		return model.NewValidationError("old password is not correct")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return model.NewInternalError(err)
	}
	if err := s.db.Model(user).Update("password_hash", hash).Error; err != nil {
		return model.NewInternalError(err)
	}
	return nil
}
