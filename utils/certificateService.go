package utils

import (
	"fmt"
	"time"

	"github.com/openvisualizationacademy/ova-site/config"

	"github.com/go-resty/resty/v2"
)

// RenderCertificate asks the external rendering service for a certificate
// document and returns the URL of the rendered file.
func RenderCertificate(displayName, courseTitle, certificateNumber string, issuedAt time.Time) (string, error) {
	client := resty.New().
		SetBaseURL(config.AppConfig.CertServiceURL).
		SetTimeout(15 * time.Second)

	var result struct {
		URL string `json:"url"`
	}

	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.CertServiceKey).
		SetBody(map[string]string{
			"template":           "course-completion",
			"display_name":       displayName,
			"course_title":       courseTitle,
			"certificate_number": certificateNumber,
			"issued_at":          issuedAt.Format("2006-01-02"),
		}).
		SetResult(&result).
		Post("certificates/render")
	if err != nil {
		return "", err
	}

	if resp.IsError() {
		return "", fmt.Errorf("certificate service returned %d", resp.StatusCode())
	}
	if result.URL == "" {
		return "", fmt.Errorf("certificate service returned no document URL")
	}

	return result.URL, nil
}
