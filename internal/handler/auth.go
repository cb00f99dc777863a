package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/dgzx-dev/schedule-board/backend/internal/domain"
)

const sessionCookieName = "__schedule_board_token"

type AuthClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *Handler) loginFailKey(r *http.Request) string {
	return fmt.Sprintf("login_fail_%s", clientIP(r))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	// 检查该来源是否因为连续失败被锁定
	failCount, err := h.redisClient.Get(ctx, h.loginFailKey(r)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		h.internalServerError(w, r, err)
		return
	}
	if failCount >= h.config.Login.MaxAttempts {
		h.errorResponse(w, r, "尝试次数过多，请稍后再试")
		return
	}

	settings, err := h.repository.GetSettings()
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "系统尚未初始化")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(settings.AdminPasswordHash), []byte(req.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			h.internalServerError(w, r, err)
			return
		}

		// 初始密码作为找回手段始终可用，用它登录时顺便把数据库里的哈希同步回来
		if h.config.InitialSettings.AdminPassword == "" || req.Password != h.config.InitialSettings.AdminPassword {
			if err := h.recordLoginFailure(ctx, r); err != nil {
				h.internalServerError(w, r, err)
				return
			}
			h.errorResponse(w, r, "密码错误")
			return
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		settings.AdminPasswordHash = string(passwordHash)
		if err := h.repository.UpdateAdminPasswordHash(settings); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	// 登录成功，清除失败计数
	if err := h.redisClient.Del(ctx, h.loginFailKey(r)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.setSessionCookie(w, settings); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "登录成功", settings)
}

func (h *Handler) recordLoginFailure(ctx context.Context, r *http.Request) error {
	key := h.loginFailKey(r)

	count, err := h.redisClient.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		// 第一次失败时才设置过期时间，保证锁定窗口从第一次失败开始计算
		return h.redisClient.Expire(ctx, key, time.Duration(h.config.Login.LockoutWindow)*time.Second).Err()
	}
	return nil
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, settings *domain.Settings) error {
	expiration := time.Now().Add(time.Duration(h.config.JWT.Expiration) * time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   strconv.FormatInt(settings.ID, 10),
		},
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    ss,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)
	return nil
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:    sessionCookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})

	h.successResponse(w, r, "登出成功", nil)
}

func (h *Handler) UpdateAdminPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=6"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	settings := r.Context().Value(SettingsCtx).(*domain.Settings)

	if err := bcrypt.CompareHashAndPassword([]byte(settings.AdminPasswordHash), []byte(req.OldPassword)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.errorResponse(w, r, "当前密码不正确")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	settings.AdminPasswordHash = string(passwordHash)
	if err := h.repository.UpdateAdminPasswordHash(settings); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 重新下发 cookie，避免管理员修改密码后立刻被登出
	if err := h.setSessionCookie(w, settings); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "修改密码成功", nil)
}
