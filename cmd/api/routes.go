package main

import (
	"context"
	"fmt"

	"loan-advisory-assistant/internal/intent"
	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/internal/routing"
	"loan-advisory-assistant/internal/session"
)

// registerDefaultRoutes installs the built-in conversational routes. Real
// deployments can register richer handlers on top or disable these by id.
func registerDefaultRoutes(ctx context.Context, uc intent.UseCase) error {
	routes := []routing.Route{
		{
			ID:         "greeting",
			IntentType: model.IntentGreeting,
			Priority:   10,
			Enabled:    true,
			Tags:       []string{"conversational"},
			Handler: routing.HandlerFunc(func(ctx context.Context, in model.Intent, sess *session.IntentContext) (model.Values, error) {
				msg := "Hello! I can help you with loan applications, loan status, credit history, property valuation and risk assessment. What would you like to do?"
				if sess != nil && sess.InteractionCount > 0 {
					msg = "Welcome back! How can I help you with your loan today?"
				}
				return model.Values{"message": model.String(msg)}, nil
			}),
		},
		{
			ID:         "farewell",
			IntentType: model.IntentFarewell,
			Priority:   10,
			Enabled:    true,
			Tags:       []string{"conversational"},
			Handler: staticReply("Thank you for using our loan advisory service. Goodbye!"),
		},
		{
			ID:         "help",
			IntentType: model.IntentHelp,
			Priority:   10,
			Enabled:    true,
			Tags:       []string{"conversational"},
			Handler: routing.HandlerFunc(func(ctx context.Context, in model.Intent, sess *session.IntentContext) (model.Values, error) {
				return model.Values{
					"message": model.String("Here is what I can do:"),
					"topics": model.StringList([]string{
						"apply for a loan",
						"check loan status",
						"review credit history",
						"estimate property value",
						"assess lending risk",
						"file a complaint",
					}),
				}, nil
			}),
		},
		{
			ID:            "question",
			IntentType:    model.IntentQuestion,
			Priority:      20,
			MinConfidence: 0.4,
			Enabled:       true,
			Tags:          []string{"conversational"},
			Handler: staticReply("That's a good question. Could you tell me whether it concerns a loan application, an existing loan, or your credit history?"),
		},
		{
			ID:              "loan-application",
			IntentType:      model.IntentLoanApplication,
			Priority:        10,
			RequiresAuth:    true,
			MinConfidence:   0.5,
			RateLimitPerMin: 30,
			Enabled:         true,
			Tags:            []string{"loan", "application"},
			Handler: routing.HandlerFunc(func(ctx context.Context, in model.Intent, sess *session.IntentContext) (model.Values, error) {
				out := model.Values{
					"message":   model.String("Let's start your loan application."),
					"next_step": model.String("collect_applicant_details"),
				}
				if lt, ok := in.Entities["loanType"]; ok {
					out["loan_type"] = lt
				}
				if amount, ok := in.Entities["amount"]; ok {
					out["requested_amount"] = amount
				}
				return out, nil
			}),
		},
		{
			ID:            "loan-status",
			IntentType:    model.IntentLoanStatus,
			Priority:      10,
			RequiresAuth:  true,
			MinConfidence: 0.5,
			Enabled:       true,
			Tags:          []string{"loan"},
			Handler: routing.HandlerFunc(func(ctx context.Context, in model.Intent, sess *session.IntentContext) (model.Values, error) {
				if sess != nil {
					if appID, ok := sess.ContextData["application_id"]; ok {
						s, _ := appID.AsString()
						return model.Values{
							"message":        model.String(fmt.Sprintf("Your application %s is under review.", s)),
							"application_id": appID,
							"status":         model.String("under_review"),
						}, nil
					}
				}
				return model.Values{
					"message":   model.String("I need your application number to check the status."),
					"next_step": model.String("collect_application_id"),
				}, nil
			}),
		},
		{
			ID:              "credit-history",
			IntentType:      model.IntentCreditHistory,
			Priority:        10,
			RequiresAuth:    true,
			MinConfidence:   0.5,
			RateLimitPerMin: 10,
			Enabled:         true,
			Tags:            []string{"credit"},
			Handler: staticReply("I'll pull up your credit history. This usually takes a few seconds."),
		},
		{
			ID:            "property-valuation",
			IntentType:    model.IntentPropertyValuation,
			Priority:      10,
			MinConfidence: 0.5,
			Enabled:       true,
			Tags:          []string{"property"},
			Handler: staticReply("I can estimate a property's value. Please share the address and property type."),
		},
		{
			ID:                  "risk-assessment",
			IntentType:          model.IntentRiskAssessment,
			Priority:            10,
			RequiresAuth:        true,
			MinConfidence:       0.5,
			RequiredContextKeys: []string{"application_id"},
			Enabled:             true,
			Tags:                []string{"risk"},
			Handler: staticReply("Running a risk assessment on your application now."),
		},
		{
			ID:         "complaint",
			IntentType: model.IntentComplaint,
			Priority:   5,
			Enabled:    true,
			Tags:       []string{"support"},
			Handler: staticReply("I'm sorry to hear that. Your complaint has been recorded and an advisor will reach out within one business day."),
		},
	}

	for _, r := range routes {
		if err := uc.RegisterRoute(ctx, r, false); err != nil {
			return fmt.Errorf("register route %s: %w", r.ID, err)
		}
	}
	return nil
}

// staticReply builds a handler that always answers with a fixed message.
func staticReply(msg string) routing.Handler {
	return routing.HandlerFunc(func(ctx context.Context, in model.Intent, sess *session.IntentContext) (model.Values, error) {
		return model.Values{"message": model.String(msg)}, nil
	})
}
