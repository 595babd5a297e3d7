package handlers

import "net/http"

// VersionInfo is set at startup from build metadata.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
}

var versionInfo = VersionInfo{Version: "dev", Commit: "HEAD", BuildDate: "unknown"}

// SetVersionInfo installs the build metadata served by /version.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo = VersionInfo{Version: version, Commit: commit, BuildDate: buildDate}
}

// Version handles GET /version.
func Version(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, versionInfo)
}
