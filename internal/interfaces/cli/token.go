package cli

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"

	"github.com/jhoicas/fifo-ledger/pkg/jwt"
)

// TokenCmd emite un token firmado con JWT_SECRET.
type TokenCmd struct {
	Client string        `help:"Identificador del cliente." required:""`
	Scope  []string      `help:"Scopes concedidos (repetible)." default:"fifo:calculate"`
	TTL    time.Duration `help:"Vigencia del token." default:"24h" name:"ttl"`
}

func (cmd *TokenCmd) Run(ctx *kong.Context, deps *Deps) error {
	tok, err := jwt.Generate(deps.Config.JWT.Secret, cmd.Client, deps.Config.JWT.Issuer, cmd.Scope, cmd.TTL)
	if err != nil {
		return fmt.Errorf("emitir token (¿JWT_SECRET definido?): %w", err)
	}
	_, _ = fmt.Fprintln(ctx.Stdout, tok)
	return nil
}
