package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

// flashCookie - cookie с уведомлением, которое надо показать после редиректа.
const flashCookie = "task_board_flash"

// Виды уведомлений.
const (
	bannerSuccess = "success"
	bannerError   = "danger"
)

// Banner - уведомление над страницей.
//
// Уведомление принадлежит одному браузеру и одному показу: оно приезжает
// в cookie с ограниченным сроком жизни и стирается при первом чтении.
// На странице оно само скрывается через TTL секунд и закрывается вручную.
type Banner struct {
	Kind    string `json:"k"`
	Message string `json:"m"`
	TTL     int    `json:"t"` // секунды
}

// Success сообщает, что уведомление об успехе.
func (b *Banner) Success() bool {
	return b != nil && b.Kind == bannerSuccess
}

func (h *Handler) successBanner(msg string) *Banner {
	return &Banner{Kind: bannerSuccess, Message: msg, TTL: seconds(h.successTTL)}
}

func (h *Handler) errorBanner(msg string) *Banner {
	return &Banner{Kind: bannerError, Message: msg, TTL: seconds(h.errorTTL)}
}

func seconds(d time.Duration) int {
	s := int(d / time.Second)
	if s < 1 {
		return 1
	}
	return s
}

// setFlash кладёт уведомление в cookie для следующей страницы.
func setFlash(w http.ResponseWriter, b *Banner) {
	data, err := json.Marshal(b)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		MaxAge:   b.TTL,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash читает уведомление из cookie и сразу стирает cookie.
// Битая cookie молча игнорируется.
func takeFlash(w http.ResponseWriter, r *http.Request) *Banner {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var b Banner
	if err := json.Unmarshal(data, &b); err != nil || b.Message == "" {
		return nil
	}
	if b.Kind != bannerSuccess {
		b.Kind = bannerError
	}
	return &b
}

// redirectWithFlash - 303 на target с уведомлением.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, target string, b *Banner) {
	if b != nil {
		setFlash(w, b)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
