//go:build !windows && !darwin

package service

import "task-launcher/internal/domain/entity"

func defaultApps() []entity.AppEntry {
	return []entity.AppEntry{
		app("chrome", "google-chrome", "chrome", "google-chrome"),
		app("chromium", "chromium", "chromium", "chromium-browser"),
		app("firefox", "firefox"),
		app("edge", "microsoft-edge", "msedge", "microsoft-edge"),
		appWithArgs("word", "libreoffice", []string{"--writer"}, "soffice.bin"),
		appWithArgs("excel", "libreoffice", []string{"--calc"}, "soffice.bin"),
		appWithArgs("powerpoint", "libreoffice", []string{"--impress"}, "soffice.bin"),
		app("notepad", "gedit"),
		app("calculator", "gnome-calculator"),
		app("spotify", "spotify"),
		app("explorer", "nautilus"),
		app("terminal", "gnome-terminal", "gnome-terminal-server", "gnome-terminal"),
		app("code", "code"),
	}
}
