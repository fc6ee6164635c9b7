// utils/firebase.go
package utils

import (
	"context"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"imara/config"
)

var (
	FCMClient  *messaging.Client
	AuthClient *auth.Client
)

// FirebaseInit initializes the Firebase App plus the Messaging and Auth clients.
func FirebaseInit() {
	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	fcm, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}
	FCMClient = fcm

	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Auth client: %v", err)
	}
	AuthClient = authClient
}
