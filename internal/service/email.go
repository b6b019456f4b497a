package service

import (
	"context"
	"fmt"
	"time"

	"insa-partnership-backend/internal/domain"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

func (s *emailService) SendDecisionNotification(ctx context.Context, email, companyName string, stage domain.ReviewStage, decision domain.Decision, message string) error {
	subject := fmt.Sprintf("Partnership Request Update - %s", companyName)
	body := fmt.Sprintf("Hello,\n\nThe partnership request for '%s' received a %s decision.", companyName, decision)
	if message != "" {
		body += fmt.Sprintf("\n\nReviewer note: %s", message)
	}
	body += "\n\nBest regards,\nINSA Partnership Office"
	return s.send(email, subject, body)
}

func (s *emailService) SendStageAssignmentNotification(ctx context.Context, email, companyName string, stage domain.ReviewStage) error {
	subject := "Partnership Request Awaiting Your Review"
	body := fmt.Sprintf("Hello,\n\nThe partnership request for '%s' is now waiting on the %s stage. Please review it at your earliest convenience.\n\nBest regards,\nINSA Partnership Office", companyName, stage)
	return s.send(email, subject, body)
}

func (s *emailService) SendPromotionNotification(ctx context.Context, email, companyName string) error {
	subject := fmt.Sprintf("Partnership Approved - %s", companyName)
	body := fmt.Sprintf("Hello,\n\nThe partnership request for '%s' has been approved. '%s' is now a registered INSA partner pending agreement signing.\n\nBest regards,\nINSA Partnership Office", companyName, companyName)
	return s.send(email, subject, body)
}

func (s *emailService) SendSigningNotification(ctx context.Context, email, companyName string) error {
	subject := fmt.Sprintf("Partnership Agreement Signed - %s", companyName)
	body := fmt.Sprintf("Hello,\n\nThe partnership agreement with '%s' has been signed. Partnership activities can now be scheduled.\n\nBest regards,\nINSA Partnership Office", companyName)
	return s.send(email, subject, body)
}

func (s *emailService) SendDeadlineReminder(ctx context.Context, email, activityTitle, companyName string, deadline time.Time) error {
	subject := fmt.Sprintf("Activity Deadline Reminder - %s", companyName)
	body := fmt.Sprintf("Hello,\n\nThe activity '%s' for partner '%s' is due on %s.\n\nBest regards,\nINSA Partnership Office", activityTitle, companyName, deadline.Format("2006-01-02"))
	return s.send(email, subject, body)
}
