package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
)

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path, err := t.replacePlaceholders(path)
	if err != nil {
		return err
	}
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path, err := t.replacePlaceholders(path)
	if err != nil {
		return err
	}

	var payload []byte
	if body != nil && body.Content != "" {
		content, err := t.replacePlaceholders(body.Content)
		if err != nil {
			return err
		}
		payload = []byte(content)
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	if t.server == nil {
		return errors.New("the API server is not running")
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.server.URL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
		header: resp.Header,
		raw:    raw,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(raw, &responseBody); err != nil {
		t.response.body = string(raw)
	} else {
		t.response.body = responseBody
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

// theResponseFieldShouldBeTheAmount compares money numerically, so "100" matches "100.00".
func (t *testContext) theResponseFieldShouldBeTheAmount(field, expected string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actual, err := decimal.NewFromString(fmt.Sprintf("%v", value))
	if err != nil {
		return fmt.Errorf("field '%s' is not an amount: %v", field, value)
	}
	want, err := decimal.NewFromString(expected)
	if err != nil {
		return err
	}
	if !actual.Equal(want) {
		return fmt.Errorf("field '%s' expected amount %s, got %s", field, want, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if actual := t.response.header.Get(header); !strings.Contains(actual, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *testContext) responseLines() ([]string, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	content := strings.TrimSpace(string(t.response.raw))
	if content == "" {
		return nil, nil
	}
	return strings.Split(content, "\n"), nil
}

func (t *testContext) theResponseBodyShouldContainTheLine(expected string) error {
	lines, err := t.responseLines()
	if err != nil {
		return err
	}
	for _, line := range lines {
		if strings.TrimRight(line, "\r") == expected {
			return nil
		}
	}
	return fmt.Errorf("line '%s' not found in response:\n%s", expected, string(t.response.raw))
}

func (t *testContext) theResponseBodyShouldHaveLines(count int) error {
	lines, err := t.responseLines()
	if err != nil {
		return err
	}
	if len(lines) != count {
		return fmt.Errorf("expected %d lines, got %d:\n%s", count, len(lines), string(t.response.raw))
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
