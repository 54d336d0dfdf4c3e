package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
	tokens       map[string]string
	userIDs      map[string]string
	statuses     []int
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:      tc,
		tokens:  make(map[string]string),
		userIDs: make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.tc.Reset(ctx)
	})

	// Background steps
	sc.Step(`^a GRiD server is running$`, s.aGridServerIsRunning)
	sc.Step(`^the first admin "([^"]*)" with password "([^"]*)" has been set up$`, s.theFirstAdminHasBeenSetUp)
	sc.Step(`^a user "([^"]*)" with password "([^"]*)" exists$`, s.aUserExists)
	sc.Step(`^a server "([^"]*)" with hostname "([^"]*)" exists$`, s.aServerExists)
	sc.Step(`^"([^"]*)" has been granted access to "([^"]*)"$`, s.hasBeenGrantedAccess)

	// Authentication steps
	sc.Step(`^I set up the first admin "([^"]*)" with password "([^"]*)"$`, s.iSetUpTheFirstAdmin)
	sc.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, s.iLogIn)
	sc.Step(`^I am logged in as "([^"]*)"$`, s.iAmLoggedInAs)
	sc.Step(`^I am not logged in$`, s.iAmNotLoggedIn)
	sc.Step(`^I use the token "([^"]*)"$`, s.iUseTheToken)
	sc.Step(`^(\d+) clients set up the first admin concurrently$`, s.clientsSetUpConcurrently)

	// Request steps
	sc.Step(`^I send a (GET|POST|PUT|DELETE) request to "([^"]*)"$`, s.iSendARequest)
	sc.Step(`^I send a (POST|PUT) request to "([^"]*)" with body:$`, s.iSendARequestWithBody)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^I should receive a valid token$`, s.iShouldReceiveAValidToken)
	sc.Step(`^the JSON field "([^"]*)" should be "([^"]*)"$`, s.theJSONFieldShouldBe)
	sc.Step(`^the response should be a list of (\d+) items?$`, s.theResponseShouldBeAListOf)
	sc.Step(`^the response list should contain "([^"]*)"$`, s.theResponseListShouldContain)
	sc.Step(`^the response body should not contain "([^"]*)"$`, s.theResponseBodyShouldNotContain)
	sc.Step(`^exactly (\d+) of them should succeed with status (\d+)$`, s.exactlyNShouldSucceed)
	sc.Step(`^the others should fail with status (\d+)$`, s.theOthersShouldFail)
}

// Background steps

func (s *StepsContext) aGridServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) theFirstAdminHasBeenSetUp(username, password string) error {
	if err := s.iSetUpTheFirstAdmin(username, password); err != nil {
		return err
	}
	return s.expectStatus(http.StatusOK)
}

func (s *StepsContext) aUserExists(username, password string) error {
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	if err := s.asAdmin(func() error { return s.do("POST", "/api/users", body) }); err != nil {
		return err
	}
	return s.expectStatus(http.StatusCreated)
}

func (s *StepsContext) aServerExists(id, hostname string) error {
	body := fmt.Sprintf(`{"id":%q,"server_type":"vm","os":"debian","hostname":%q}`, id, hostname)
	if err := s.asAdmin(func() error { return s.do("POST", "/api/servers", body) }); err != nil {
		return err
	}
	return s.expectStatus(http.StatusCreated)
}

func (s *StepsContext) hasBeenGrantedAccess(username, serverID string) error {
	userID, ok := s.userIDs[username]
	if !ok {
		return fmt.Errorf("unknown user %q", username)
	}
	path := fmt.Sprintf("/api/servers/%s/access/%s", serverID, userID)
	if err := s.asAdmin(func() error { return s.do("PUT", path, "") }); err != nil {
		return err
	}
	return s.expectStatus(http.StatusOK)
}

// asAdmin runs fn with the first admin's token, then restores the caller.
func (s *StepsContext) asAdmin(fn func() error) error {
	adminToken, ok := s.tokens[""]
	if !ok {
		return fmt.Errorf("no admin has been set up")
	}
	prev := s.authToken
	s.authToken = adminToken
	defer func() { s.authToken = prev }()
	return fn()
}

// Authentication steps

func (s *StepsContext) iSetUpTheFirstAdmin(username, password string) error {
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	if err := s.do("POST", "/api/setup", body); err != nil {
		return err
	}
	if s.response.StatusCode == http.StatusOK {
		var result struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(s.responseBody, &result); err != nil {
			return err
		}
		s.tokens[""] = result.Token
		s.tokens[username] = result.Token
		s.authToken = result.Token
		return s.rememberUserID(username)
	}
	return nil
}

func (s *StepsContext) iLogIn(username, password string) error {
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	s.authToken = ""
	if err := s.do("POST", "/api/auth/login", body); err != nil {
		return err
	}
	if s.response.StatusCode == http.StatusOK {
		var result struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(s.responseBody, &result); err != nil {
			return err
		}
		s.tokens[username] = result.Token
		s.authToken = result.Token
	}
	return nil
}

func (s *StepsContext) iAmLoggedInAs(username string) error {
	token, ok := s.tokens[username]
	if !ok {
		return fmt.Errorf("%q has not logged in", username)
	}
	s.authToken = token
	return nil
}

func (s *StepsContext) iAmNotLoggedIn() error {
	s.authToken = ""
	return nil
}

func (s *StepsContext) iUseTheToken(token string) error {
	s.authToken = token
	return nil
}

// rememberUserID looks username up through the admin API so later steps can
// address the user by id.
func (s *StepsContext) rememberUserID(username string) error {
	return s.asAdmin(func() error {
		if err := s.do("GET", "/api/users", ""); err != nil {
			return err
		}
		var users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		}
		if err := json.Unmarshal(s.responseBody, &users); err != nil {
			return err
		}
		for _, u := range users {
			s.userIDs[u.Username] = u.ID
		}
		if _, ok := s.userIDs[username]; !ok {
			return fmt.Errorf("user %q not listed", username)
		}
		return nil
	})
}

func (s *StepsContext) clientsSetUpConcurrently(n int) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	s.statuses = nil
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := fmt.Sprintf(`{"username":"admin%d","password":"pw%d"}`, i, i)
			resp, err := s.tc.HTTPClient.Post(s.tc.Server.ServerURL+"/api/setup", "application/json", strings.NewReader(body))
			status := 0
			if err == nil {
				status = resp.StatusCode
				_ = resp.Body.Close()
			}
			mu.Lock()
			s.statuses = append(s.statuses, status)
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	return nil
}

// Request steps

var userRefPattern = regexp.MustCompile(`\{user:([^}]+)\}`)

// expandPath replaces {user:name} with that user's id.
func (s *StepsContext) expandPath(path string) (string, error) {
	var missing string
	out := userRefPattern.ReplaceAllStringFunc(path, func(m string) string {
		name := userRefPattern.FindStringSubmatch(m)[1]
		id, ok := s.userIDs[name]
		if !ok {
			missing = name
		}
		return id
	})
	if missing != "" {
		return "", fmt.Errorf("unknown user %q in path", missing)
	}
	return out, nil
}

func (s *StepsContext) iSendARequest(method, path string) error {
	return s.do(method, path, "")
}

func (s *StepsContext) iSendARequestWithBody(method, path string, body *godog.DocString) error {
	return s.do(method, path, body.Content)
}

func (s *StepsContext) do(method, path, body string) error {
	path, err := s.expandPath(path)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, s.tc.Server.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	if err != nil {
		return err
	}

	if method == "POST" && path == "/api/users" && s.response.StatusCode == http.StatusCreated {
		var created struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		}
		if err := json.Unmarshal(s.responseBody, &created); err == nil {
			s.userIDs[created.Username] = created.ID
		}
	}
	return nil
}

// Response steps

func (s *StepsContext) expectStatus(expected int) error {
	if s.response == nil {
		return fmt.Errorf("no response received")
	}
	if s.response.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseStatusShouldBe(expected int) error {
	return s.expectStatus(expected)
}

func (s *StepsContext) iShouldReceiveAValidToken() error {
	if err := s.expectStatus(http.StatusOK); err != nil {
		return err
	}
	var result struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(s.responseBody, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if strings.Count(result.Token, ".") != 2 {
		return fmt.Errorf("token is not a JWT: %q", result.Token)
	}
	return nil
}

func (s *StepsContext) theJSONFieldShouldBe(field, expected string) error {
	var obj map[string]interface{}
	if err := json.Unmarshal(s.responseBody, &obj); err != nil {
		return fmt.Errorf("response is not a JSON object: %s", string(s.responseBody))
	}
	value, ok := obj[field]
	if !ok {
		return fmt.Errorf("field %q missing from %s", field, string(s.responseBody))
	}
	if got := fmt.Sprint(value); got != expected {
		return fmt.Errorf("expected %s to be %q, got %q", field, expected, got)
	}
	return nil
}

func (s *StepsContext) responseList() ([]map[string]interface{}, error) {
	var list []map[string]interface{}
	if err := json.Unmarshal(s.responseBody, &list); err != nil {
		return nil, fmt.Errorf("response is not a JSON list: %s", string(s.responseBody))
	}
	return list, nil
}

func (s *StepsContext) theResponseShouldBeAListOf(n int) error {
	list, err := s.responseList()
	if err != nil {
		return err
	}
	if len(list) != n {
		return fmt.Errorf("expected %d items, got %d: %s", n, len(list), string(s.responseBody))
	}
	return nil
}

// theResponseListShouldContain matches an item by its id or username.
func (s *StepsContext) theResponseListShouldContain(name string) error {
	list, err := s.responseList()
	if err != nil {
		return err
	}
	for _, item := range list {
		if item["id"] == name || item["username"] == name {
			return nil
		}
	}
	return fmt.Errorf("%q not found in %s", name, string(s.responseBody))
}

func (s *StepsContext) theResponseBodyShouldNotContain(text string) error {
	if strings.Contains(string(s.responseBody), text) {
		return fmt.Errorf("response unexpectedly contains %q: %s", text, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) exactlyNShouldSucceed(n, status int) error {
	count := 0
	for _, st := range s.statuses {
		if st == status {
			count++
		}
	}
	if count != n {
		return fmt.Errorf("expected %d responses with status %d, got %v", n, status, s.statuses)
	}
	return nil
}

func (s *StepsContext) theOthersShouldFail(status int) error {
	for _, st := range s.statuses {
		if st != http.StatusOK && st != status {
			return fmt.Errorf("unexpected status %d in %v", st, s.statuses)
		}
	}
	return nil
}
