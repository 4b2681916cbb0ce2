package session

import "time"

type Icon string

const (
	IconSuccess Icon = "success"
	IconInfo    Icon = "info"
	IconError   Icon = "error"
	IconBag     Icon = "bag"
	IconHeart   Icon = "heart"
)

// ToastTTL is how long a toast stays visible.
const ToastTTL = 3 * time.Second

// Toast is a short notification shown to the session's user.
type Toast struct {
	ID      int64     `json:"id"`
	Message string    `json:"message"`
	Icon    Icon      `json:"icon"`
	Expires time.Time `json:"-"`
}

func liveToasts(toasts []Toast, now time.Time) []Toast {
	out := toasts[:0]
	for _, t := range toasts {
		if now.Before(t.Expires) {
			out = append(out, t)
		}
	}
	return out
}
