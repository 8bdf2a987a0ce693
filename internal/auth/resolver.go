package auth

import (
	"context"
	"fmt"

	apperrors "github.com/lk2023060901/ai-learning-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

// HeaderPolicy 决定 X-User-Id 的信任方式
type HeaderPolicy string

const (
	// HeaderPolicyBound 头部身份必须由已验证的 bearer token 或会话签名背书
	HeaderPolicyBound HeaderPolicy = "bound"
	// HeaderPolicyTrusted 头部身份直接采信（仅限内部调用方）
	HeaderPolicyTrusted HeaderPolicy = "trusted"
	// HeaderPolicyIgnore 完全忽略头部身份
	HeaderPolicyIgnore HeaderPolicy = "ignore"
)

// ParseHeaderPolicy 解析配置中的策略名
func ParseHeaderPolicy(s string) (HeaderPolicy, error) {
	switch p := HeaderPolicy(s); p {
	case HeaderPolicyBound, HeaderPolicyTrusted, HeaderPolicyIgnore:
		return p, nil
	default:
		return "", fmt.Errorf("unknown header policy %q", s)
	}
}

// 身份来源
const (
	SourceBearer       = "bearer"
	SourceHeader       = "header"
	SourceSignedHeader = "signed_header"
)

// Credentials 请求携带的身份材料
type Credentials struct {
	UserID        string // X-User-Id
	Signature     string // X-User-Signature
	Authorization string // Authorization
}

// Identity 已解析的调用方
type Identity struct {
	UserID string
	Source string
}

// TokenVerifier 验证 bearer token 并返回其声明
type TokenVerifier interface {
	VerifyAccessToken(token string) (*JWTClaims, error)
}

// Resolver 根据请求头确定调用方身份
type Resolver struct {
	verifier      TokenVerifier
	policy        HeaderPolicy
	sessionSecret []byte
	logger        *logger.Logger
}

// NewResolver 创建身份解析器
func NewResolver(verifier TokenVerifier, policy HeaderPolicy, sessionSecret string, log *logger.Logger) *Resolver {
	return &Resolver{
		verifier:      verifier,
		policy:        policy,
		sessionSecret: []byte(sessionSecret),
		logger:        log.Named("identity"),
	}
}

// Policy 返回当前头部策略
func (r *Resolver) Policy() HeaderPolicy {
	return r.policy
}

// Resolve 返回调用方身份；无法确定时返回 auth 类错误
func (r *Resolver) Resolve(ctx context.Context, creds Credentials) (Identity, error) {
	if r.policy == HeaderPolicyTrusted && creds.UserID != "" {
		return Identity{UserID: creds.UserID, Source: SourceHeader}, nil
	}

	claims, tokenErr := r.verifyBearer(creds.Authorization)
	if tokenErr != nil {
		r.logger.WithContext(ctx).Debug("bearer token rejected", zap.Error(tokenErr))
	}

	if claims != nil {
		if r.policy == HeaderPolicyBound && creds.UserID != "" && creds.UserID != claims.UserID() {
			r.logger.WithContext(ctx).Warn("X-User-Id does not match token subject",
				zap.String("header_user_id", creds.UserID),
				zap.String("token_subject", claims.UserID()))
			return Identity{}, apperrors.New(apperrors.ErrIdentityMismatch, "X-User-Id does not match the authenticated user")
		}
		return Identity{UserID: claims.UserID(), Source: SourceBearer}, nil
	}

	if r.policy == HeaderPolicyBound && creds.UserID != "" {
		if VerifyUserIDSignature(r.sessionSecret, creds.UserID, creds.Signature) {
			return Identity{UserID: creds.UserID, Source: SourceSignedHeader}, nil
		}
		return Identity{}, apperrors.NewUnauthorizedError("X-User-Id is not backed by a verified session")
	}

	if tokenErr != nil && creds.Authorization != "" {
		return Identity{}, apperrors.Wrap(tokenErr, apperrors.ErrInvalidToken)
	}
	return Identity{}, apperrors.NewUnauthorizedError("User ID required")
}

func (r *Resolver) verifyBearer(header string) (*JWTClaims, error) {
	if header == "" || r.verifier == nil {
		return nil, nil
	}
	token, err := ExtractTokenFromHeader(header)
	if err != nil {
		return nil, err
	}
	return r.verifier.VerifyAccessToken(token)
}
