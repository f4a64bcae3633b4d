// issue_token emite un JWT firmado con JWT_SECRET para operar la API de entregas
// (la autenticación de usuarios vive fuera de este servicio).
//
// Uso: go run ./cmd/issue_token --user u-123 --name "Ana Pérez" --role almacenista [--exp 480]
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/jhoicas/entregas-epp/pkg/config"
	"github.com/jhoicas/entregas-epp/pkg/jwt"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		userID string
		name   string
		role   string
		exp    int
	)
	flagSet := pflag.NewFlagSet("issue_token", pflag.ContinueOnError)
	flagSet.StringVarP(&userID, "user", "u", "", "ID del usuario (vacío = UUID nuevo)")
	flagSet.StringVarP(&name, "name", "n", "", "nombre a registrar como autorizador")
	flagSet.StringVarP(&role, "role", "r", jwt.RoleConsulta, "supervisor | almacenista | consulta")
	flagSet.IntVar(&exp, "exp", 0, "minutos de validez (0 = JWT_EXPIRATION_MINUTES)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	switch role {
	case jwt.RoleSupervisor, jwt.RoleAlmacenista, jwt.RoleConsulta:
	default:
		return fmt.Errorf("rol desconocido %q", role)
	}
	if userID == "" {
		userID = uuid.NewString()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if exp <= 0 {
		exp = cfg.JWT.Expiration
	}

	token, err := jwt.Generate(cfg.JWT.Secret, jwt.Identity{UserID: userID, Name: name, Role: role}, cfg.JWT.Issuer, exp)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
