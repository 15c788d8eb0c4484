package submission

import (
	"context"
	"fmt"
	"regexp"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	PostWithContentType(path, contentType, body string) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (interface{}, error)
	DecodeResponse(v interface{}) error
}

var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`)

// RegisterSteps registers submission-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &submissionSteps{tc: tc}

	ctx.Step(`^I submit the form:$`, steps.submitForm)
	ctx.Step(`^I submit the raw body "([^"]*)" as "([^"]*)"$`, steps.submitRaw)
	ctx.Step(`^I list the submissions$`, steps.listSubmissions)

	ctx.Step(`^the submission should be acknowledged$`, steps.shouldBeAcknowledged)
	ctx.Step(`^the submission should be rejected with "([^"]*)"$`, steps.shouldBeRejectedWith)
	ctx.Step(`^the last listed submission should have "([^"]*)" equal to "([^"]*)"$`, steps.lastListedShouldHave)
	ctx.Step(`^the last listed submission should have a millisecond UTC timestamp$`, steps.lastListedShouldHaveTimestamp)
}

type submissionSteps struct {
	tc TestContext
}

type listedSubmission struct {
	Data        map[string]interface{} `json:"data"`
	SubmittedAt string                 `json:"submittedAt"`
}

func (s *submissionSteps) submitForm(_ context.Context, body *godog.DocString) error {
	return s.tc.POST("/api/submit", body.Content)
}

func (s *submissionSteps) submitRaw(_ context.Context, body, contentType string) error {
	return s.tc.PostWithContentType("/api/submit", contentType, body)
}

func (s *submissionSteps) listSubmissions(_ context.Context) error {
	return s.tc.GET("/api/submissions", nil)
}

func (s *submissionSteps) shouldBeAcknowledged(_ context.Context) error {
	v, err := s.tc.GetResponseField("success")
	if err != nil {
		return err
	}
	if v != true {
		return fmt.Errorf("expected success true, got %v", v)
	}
	return nil
}

func (s *submissionSteps) shouldBeRejectedWith(_ context.Context, message string) error {
	success, err := s.tc.GetResponseField("success")
	if err != nil {
		return err
	}
	if success != false {
		return fmt.Errorf("expected success false, got %v", success)
	}
	got, err := s.tc.GetResponseField("error")
	if err != nil {
		return err
	}
	if got != message {
		return fmt.Errorf("expected error %q, got %v", message, got)
	}
	return nil
}

func (s *submissionSteps) last() (listedSubmission, error) {
	var subs []listedSubmission
	if err := s.tc.DecodeResponse(&subs); err != nil {
		return listedSubmission{}, err
	}
	if len(subs) == 0 {
		return listedSubmission{}, fmt.Errorf("no submissions listed")
	}
	return subs[len(subs)-1], nil
}

func (s *submissionSteps) lastListedShouldHave(_ context.Context, field, value string) error {
	sub, err := s.last()
	if err != nil {
		return err
	}
	got := fmt.Sprint(sub.Data[field])
	if got != value {
		return fmt.Errorf("expected %s %q, got %q", field, value, got)
	}
	return nil
}

func (s *submissionSteps) lastListedShouldHaveTimestamp(_ context.Context) error {
	sub, err := s.last()
	if err != nil {
		return err
	}
	if !timestampPattern.MatchString(sub.SubmittedAt) {
		return fmt.Errorf("unexpected submittedAt %q", sub.SubmittedAt)
	}
	return nil
}
