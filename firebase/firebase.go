package firebase

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// NewApp inicializa o app do Firebase a partir do arquivo de credenciais
func NewApp(ctx context.Context, credentialsPath string) (*firebase.App, error) {
	if credentialsPath == "" {
		return nil, errors.New("FIREBASE_CREDENTIALS_PATH não está definido nas variáveis de ambiente")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar Firebase: %w", err)
	}
	return app, nil
}

// AuthClient retorna o cliente de autenticação usado para validar ID tokens
func AuthClient(ctx context.Context, app *firebase.App) (*auth.Client, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter cliente de Auth: %w", err)
	}
	return client, nil
}

// FirestoreClient retorna o cliente do Firestore; o chamador deve fechá-lo
func FirestoreClient(ctx context.Context, app *firebase.App) (*firestore.Client, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter cliente do Firestore: %w", err)
	}
	return client, nil
}
