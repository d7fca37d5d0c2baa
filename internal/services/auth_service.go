package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"ironmind/internal/auth"
	"ironmind/internal/config"
	"ironmind/internal/friendcode"
	"ironmind/internal/logger"
	"ironmind/internal/models"
	"ironmind/internal/storage"
)

// ErrFriendCodeExhausted 表示多次重试后仍无法分配唯一的好友码。
var ErrFriendCodeExhausted = errors.New("无法分配唯一的好友码")

// SignupInput 是注册所需的资料。
type SignupInput struct {
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	Name            string   `json:"name"`
	Age             int      `json:"age"`
	Height          string   `json:"height"`
	Weight          float64  `json:"weight"`
	ExperienceLevel string   `json:"experienceLevel"`
	WorkoutVolume   string   `json:"workoutVolume"`
	Goals           []string `json:"goals"`
	Equipment       string   `json:"equipment"`
}

// AuthResult 是注册或登录成功后返回给客户端的内容。
type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// AuthService 定义了用户认证服务的接口。
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

type authService struct {
	userRepo  storage.UserRepository
	blacklist auth.TokenBlacklist
	cfg       config.Config

	generateCode func(length int) (string, error)
}

// NewAuthService 创建一个新的 AuthService 实例。blacklist 为 nil 时登出只是空操作。
func NewAuthService(userRepo storage.UserRepository, blacklist auth.TokenBlacklist, cfg config.Config) AuthService {
	return &authService{
		userRepo:     userRepo,
		blacklist:    blacklist,
		cfg:          cfg,
		generateCode: friendcode.Generate,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateSignup(in *SignupInput) error {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	passwordErr := auth.ValidatePassword(in.Password)

	switch {
	case in.Email == "" || !strings.Contains(in.Email, "@"):
		return invalidField("email", "A valid email is required")
	case passwordErr != nil:
		return invalidField("password", passwordErr.Error())
	case in.Name == "":
		return invalidField("name", "Name is required")
	case in.Age < 13 || in.Age > 120:
		return invalidField("age", "Age must be between 13 and 120")
	case in.Weight < 50 || in.Weight > 500:
		return invalidField("weight", "Weight must be between 50 and 500")
	case len(in.Goals) == 0:
		return invalidField("goals", "Select at least one goal")
	}
	return nil
}

// Signup 校验资料、创建用户并签发 Token。
// 好友码冲突时重新生成，最多 FRIEND_CODE.MAX_RETRIES 次。
func (s *authService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	if err := validateSignup(&in); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	user := &models.User{
		Email:           in.Email,
		Name:            in.Name,
		PasswordHash:    hash,
		Age:             in.Age,
		Height:          in.Height,
		Weight:          in.Weight,
		ExperienceLevel: in.ExperienceLevel,
		WorkoutVolume:   in.WorkoutVolume,
		Goals:           in.Goals,
		Equipment:       in.Equipment,
		Theme:           models.ThemeLight,
	}
	if err := s.createWithFriendCode(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("新用户注册", zap.Uint("userID", user.ID))
	return s.issueToken(user)
}

func (s *authService) createWithFriendCode(ctx context.Context, user *models.User) error {
	length := s.cfg.FriendCode.Length
	if length <= 0 {
		length = friendcode.DefaultLength
	}
	attempts := s.cfg.FriendCode.MaxRetries
	if attempts <= 0 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		code, err := s.generateCode(length)
		if err != nil {
			return fmt.Errorf("生成好友码失败: %w", err)
		}
		user.ID = 0
		user.FriendCode = &code

		err = s.userRepo.Create(ctx, user)
		if err == nil {
			return nil
		}
		if !errors.Is(err, storage.ErrDuplicateUser) {
			return err
		}

		// 唯一约束冲突可能来自邮箱（并发注册），也可能来自好友码
		taken, checkErr := s.userRepo.EmailExists(ctx, user.Email)
		if checkErr != nil {
			return checkErr
		}
		if taken {
			return ErrEmailTaken
		}
		logger.Debug("好友码冲突，重新生成", zap.Int("attempt", i+1))
	}
	return ErrFriendCodeExhausted
}

// Login 校验邮箱和密码。用户不存在与密码错误返回同一个错误。
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(user)
}

func (s *authService) issueToken(user *models.User) (*AuthResult, error) {
	token, expiresAt, err := auth.GenerateToken(user.ID, user.Email, s.cfg.Auth)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Logout 把 Token 的 JTI 加入黑名单，直到其原本的过期时间。
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	return auth.Revoke(ctx, s.blacklist, claims)
}

func (s *authService) EmailExists(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, invalidField("email", "A valid email is required")
	}
	return s.userRepo.EmailExists(ctx, email)
}
