package version

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	repoOwner = "khanglvm"
	repoName  = "skillhub"

	releaseURL = "https://api.github.com/repos/" + repoOwner + "/" + repoName + "/releases/latest"

	// checkInterval is how long a check result is trusted before the
	// GitHub API is consulted again.
	checkInterval = 24 * time.Hour
)

type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// updateCache persists the last check so repeated invocations stay
// offline within the check interval.
type updateCache struct {
	LastCheck     time.Time `json:"lastCheck"`
	LatestVersion string    `json:"latestVersion"`
}

// CheckUpdate returns the latest release version when it differs from
// the running build, or "" when up to date (or checked recently).
func CheckUpdate(ctx context.Context) (string, error) {
	cache := loadCache()
	if time.Since(cache.LastCheck) < checkInterval {
		if cache.LatestVersion != "" && cache.LatestVersion != strings.TrimPrefix(Version, "v") {
			return cache.LatestVersion, nil
		}
		return "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releaseURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to check for updates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to parse release response: %w", err)
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	saveCache(&updateCache{LastCheck: time.Now(), LatestVersion: latest})

	if latest != strings.TrimPrefix(Version, "v") {
		return latest, nil
	}
	return "", nil
}

// DownloadUpdate fetches the release binary for this platform into a
// temp file, verifying the published SHA-256 checksum when available.
func DownloadUpdate(ctx context.Context, newVersion string) (string, error) {
	binaryName := repoName
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}

	assetBase := fmt.Sprintf("https://github.com/%s/%s/releases/download/v%s/", repoOwner, repoName, newVersion)

	expectedSum, err := fetchChecksum(ctx, assetBase+binaryName+".sha256")
	if err != nil {
		// Release may not publish checksums; download still proceeds.
		expectedSum = ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetBase+binaryName, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s-%s", repoName, newVersion, binaryName))
	out, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer out.Close()

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, hasher), resp.Body); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	if expectedSum != "" {
		actual := hex.EncodeToString(hasher.Sum(nil))
		if !strings.EqualFold(actual, expectedSum) {
			os.Remove(tempPath)
			return "", fmt.Errorf("checksum mismatch: expected %s, got %s", expectedSum, actual)
		}
	}

	if err := os.Chmod(tempPath, 0755); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to make binary executable: %w", err)
	}
	return tempPath, nil
}

// fetchChecksum reads a "<hex>  <filename>" checksum asset.
func fetchChecksum(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("checksum asset not found (status %d)", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 || len(fields[0]) != 64 {
		return "", fmt.Errorf("invalid checksum format")
	}
	return fields[0], nil
}

// ApplyUpdate swaps the running binary for the downloaded one, keeping
// a .bak copy to roll back on failure.
func ApplyUpdate(tempPath string) error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate current binary: %w", err)
	}

	backupPath := execPath + ".bak"
	if err := os.Rename(execPath, backupPath); err != nil {
		return fmt.Errorf("failed to back up current binary: %w", err)
	}

	if err := os.Rename(tempPath, execPath); err != nil {
		os.Rename(backupPath, execPath)
		return fmt.Errorf("failed to install new binary: %w", err)
	}

	if err := os.Chmod(execPath, 0755); err != nil {
		os.Rename(backupPath, execPath)
		return fmt.Errorf("failed to make binary executable: %w", err)
	}
	return nil
}

func cachePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".skillhub-update.json"), nil
}

func loadCache() *updateCache {
	path, err := cachePath()
	if err != nil {
		return &updateCache{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return &updateCache{}
	}
	var cache updateCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return &updateCache{}
	}
	return &cache
}

func saveCache(cache *updateCache) error {
	path, err := cachePath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
