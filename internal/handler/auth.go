package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hospitalq/bed-allocation/internal/config"
	"github.com/hospitalq/bed-allocation/internal/utils"
)

// AuthHandler authenticates operators against the accounts configured
// in the OPERATORS env var and issues short-lived access tokens for
// the command endpoints.
type AuthHandler struct {
	Cfg config.Config
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{Cfg: cfg}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type operatorPart struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type loginResp struct {
	Operator operatorPart `json:"operator"`
	Access   tokenPart    `json:"access"`
}

// Login handles POST /v1/auth/login. Unknown usernames and wrong
// passwords get the same 401 so the response does not leak which
// accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	var account *config.Operator
	for i := range h.Cfg.Operators {
		if h.Cfg.Operators[i].Username == req.Username {
			account = &h.Cfg.Operators[i]
			break
		}
	}
	if account == nil || !utils.VerifyPassword(account.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, account.Username, account.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, loginResp{
		Operator: operatorPart{Username: account.Username, Role: account.Role},
		Access:   tokenPart{Token: access.Token, Expires: access.Exp},
	})
}
