package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"rosterhub/backend/internal/dto"
	"rosterhub/backend/internal/model"
	"rosterhub/backend/internal/repository"
	"rosterhub/backend/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService(t *testing.T) (AuthService, *repository.Repository) {
	t.Helper()
	cfg := testConfig()
	repo := newTestRepos()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	// Redis 传 nil，登出与黑名单走降级路径
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	repo.User.Create(context.Background(), &model.User{
		UserID:       "u1",
		Name:         "张三",
		Email:        "zhangsan@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleEmployee,
	})
	return svc, repo
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "zhangsan@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("期望返回 Token 对")
	}
	if result.User.ID != "u1" || result.User.Role != model.RoleEmployee {
		t.Errorf("用户信息不符: %+v", result.User)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "zhangsan@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	// 不存在的邮箱与密码错误返回同一错误，避免泄露账号是否存在
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── Refresh 测试 ──

func TestAuthService_Refresh_Success(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "zhangsan@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	result, err := svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("Refresh 应成功: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("期望返回新的 AccessToken")
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "zhangsan@example.com",
		Password: "password123",
	})

	// 用 access token 续签应被拒绝
	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: login.AccessToken,
	})
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("期望 ErrInvalidRefresh，实际: %v", err)
	}
}

func TestAuthService_Refresh_Garbage(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: "not-a-token"})
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("期望 ErrInvalidRefresh，实际: %v", err)
	}
}

// ── Logout 测试 ──

func TestAuthService_Logout_DegradesWithoutRedis(t *testing.T) {
	svc, _ := setupTestAuthService(t)

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "zhangsan@example.com",
		Password: "password123",
	})

	// Redis 为 nil 时登出不报错（降级为客户端丢弃）
	if err := svc.Logout(context.Background(), login.RefreshToken); err != nil {
		t.Errorf("无 Redis 时 Logout 应降级成功: %v", err)
	}
	// 非法 token 同样静默成功
	if err := svc.Logout(context.Background(), "garbage"); err != nil {
		t.Errorf("非法 token 的 Logout 应静默成功: %v", err)
	}
}
