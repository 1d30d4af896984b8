//go:build windows

package service

import "task-launcher/internal/domain/entity"

func defaultApps() []entity.AppEntry {
	apps := []entity.AppEntry{
		app("chrome", `C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`),
		app("firefox", `C:\Program Files\Mozilla Firefox\firefox.exe`),
		app("edge", `C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`),
		app("word", `C:\Program Files\Microsoft Office\root\Office16\WINWORD.EXE`),
		app("excel", `C:\Program Files\Microsoft Office\root\Office16\EXCEL.EXE`),
		app("powerpoint", `C:\Program Files\Microsoft Office\root\Office16\POWERPNT.EXE`),
		app("notepad", `C:\Windows\system32\notepad.exe`),
		app("calculator", `C:\Windows\System32\calc.exe`, "calc", "calculatorapp", "calculator"),
		app("spotify", `%APPDATA%\Spotify\Spotify.exe`),
		app("explorer", `C:\Windows\explorer.exe`),
		app("paint", `C:\Windows\system32\mspaint.exe`),
		app("cmd", `C:\Windows\system32\cmd.exe`),
		app("powershell", `C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`),
	}
	for i := range apps {
		apps[i].Executable = ExpandWindowsVars(apps[i].Executable)
	}
	return apps
}
