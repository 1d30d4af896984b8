//go:build darwin

package service

import "task-launcher/internal/domain/entity"

func macApp(name, bundle string) entity.AppEntry {
	return appWithArgs(name, "open", []string{"-a", bundle}, bundle)
}

func defaultApps() []entity.AppEntry {
	return []entity.AppEntry{
		macApp("chrome", "Google Chrome"),
		macApp("firefox", "Firefox"),
		macApp("edge", "Microsoft Edge"),
		macApp("safari", "Safari"),
		macApp("word", "Microsoft Word"),
		macApp("excel", "Microsoft Excel"),
		macApp("powerpoint", "Microsoft PowerPoint"),
		macApp("notes", "Notes"),
		macApp("textedit", "TextEdit"),
		macApp("calculator", "Calculator"),
		macApp("spotify", "Spotify"),
		macApp("finder", "Finder"),
		macApp("terminal", "Terminal"),
	}
}
