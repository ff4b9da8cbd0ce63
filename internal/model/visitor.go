package model

import "github.com/golang-jwt/jwt/v5"

// VisitorClaims are JWT claims for an anonymous visitor token
type VisitorClaims struct {
	VisitorID string `json:"visitorId"`
	jwt.RegisteredClaims
}

// VisitorResponse is returned when a visitor token is issued
type VisitorResponse struct {
	Token      string `json:"token"`
	VisitorID  string `json:"visitorId"`
	DailyLimit int    `json:"dailyLimit"`
}

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
