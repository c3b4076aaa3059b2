// response.go
//
// CrossFit workout and training group tracking service
// Copyright (c) 2026 CrossBox <dev@crossbox.fit> (https://crossbox.fit)
//
// This file is part of wodtracker.
// wodtracker is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// wodtracker is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with wodtracker.
// If not, see <https://www.gnu.org/licenses/>.

package helpers

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

// AssertStatus verifies the HTTP status code
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("Expected status %d, got %d", expected, resp.StatusCode)
	}
}

// ParseJSON decodes the response body into the target
func ParseJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	defer resp.Body.Close()

	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("Failed to decode JSON: %v. Body: %s", err, string(body))
	}
}

// AssertErrorEnvelope verifies the standard error body shape
func AssertErrorEnvelope(t *testing.T, resp *http.Response) {
	t.Helper()
	var envelope struct {
		Status    int    `json:"status"`
		Message   string `json:"message"`
		Ok        bool   `json:"ok"`
		Timestamp string `json:"timestamp"`
	}
	ParseJSON(t, resp, &envelope)

	if envelope.Ok {
		t.Error("Expected ok=false in error envelope")
	}
	if envelope.Status != resp.StatusCode {
		t.Errorf("Envelope status %d does not match HTTP status %d", envelope.Status, resp.StatusCode)
	}
	if envelope.Message == "" {
		t.Error("Expected a message in error envelope")
	}
	if envelope.Timestamp == "" {
		t.Error("Expected a timestamp in error envelope")
	}
}
