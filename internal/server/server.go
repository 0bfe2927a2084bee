package server

import (
	"github.com/labstack/echo/v4"
)

// 各ハンドラが自分のルートを登録する
type Router interface {
	RegisterRoutes(e *echo.Echo)
}

func New(routers ...Router) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	for _, r := range routers {
		r.RegisterRoutes(e)
	}
	return e
}

func Start(addr string, routers ...Router) error {
	return New(routers...).Start(addr)
}
