package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratadi/strata/internal/models"
)

const sampleDoc = `
services:
  - id: db
    class: app.DB
    visibility: private
    layers: [infrastructure]
  - id: repo
    class: app.Repo
    layers: [domain]
    args:
      - "@db"
      - "dsn-literal"
      - "@@literal-at-sign"
      - ["@db", 42]
  - id: request
    synthetic: true
  - id: audit_repo
    class: app.AuditRepo
    decorates: repo
    inner_name: repo.plain

aliases:
  - id: repository
    target: repo
  - id: backdoor
    target: db
    visibility: public

rules:
  - dependent: domain
    dependency: infrastructure
  - child: admin
    if: "controller && admin"
    dependent: controller
    dependency: infrastructure
`

func TestLoadNormalizesServices(t *testing.T) {
	res, err := Load([]byte(sampleDoc))
	require.NoError(t, err)

	db, ok := res.Registry.Definition("db")
	require.True(t, ok)
	assert.Equal(t, models.VisibilityPrivate, db.Visibility)
	assert.True(t, db.Layers.Has("infrastructure"))

	repo, ok := res.Registry.Definition("repo")
	require.True(t, ok)
	require.Len(t, repo.Args, 4)

	assert.Equal(t, models.ArgumentReference, repo.Args[0].Kind)
	assert.Equal(t, "db", repo.Args[0].Ref)

	assert.Equal(t, models.ArgumentLiteral, repo.Args[1].Kind)
	assert.Equal(t, "dsn-literal", repo.Args[1].Value)

	// "@@" escapes a literal leading "@".
	assert.Equal(t, models.ArgumentLiteral, repo.Args[2].Kind)
	assert.Equal(t, "@literal-at-sign", repo.Args[2].Value)

	assert.Equal(t, models.ArgumentCollection, repo.Args[3].Kind)
	require.Len(t, repo.Args[3].Items, 2)
	assert.Equal(t, "db", repo.Args[3].Items[0].Ref)
	assert.Equal(t, 42, repo.Args[3].Items[1].Value)

	request, ok := res.Registry.Definition("request")
	require.True(t, ok)
	assert.True(t, request.Synthetic)

	decorator, ok := res.Registry.Definition("audit_repo")
	require.True(t, ok)
	assert.Equal(t, "repo", decorator.Decorates)
	assert.Equal(t, "repo.plain", decorator.InnerName)
}

func TestLoadNormalizesAliases(t *testing.T) {
	res, err := Load([]byte(sampleDoc))
	require.NoError(t, err)

	repository, ok := res.Registry.AliasFor("repository")
	require.True(t, ok)
	assert.Equal(t, "repo", repository.Target)
	assert.True(t, repository.InheritVisibility, "omitted visibility defers to the target")

	backdoor, ok := res.Registry.AliasFor("backdoor")
	require.True(t, ok)
	assert.False(t, backdoor.InheritVisibility)
	assert.Equal(t, models.VisibilityPublic, backdoor.Visibility)
}

func TestLoadCompilesRulePredicates(t *testing.T) {
	res, err := Load([]byte(sampleDoc))
	require.NoError(t, err)
	require.Len(t, res.Rules, 2)

	plain := res.Rules[0]
	assert.Equal(t, "domain", plain.Dependent)
	assert.Nil(t, plain.Predicate)

	scoped := res.Rules[1]
	assert.Equal(t, "admin", scoped.Child)
	require.NotNil(t, scoped.Predicate)
	assert.True(t, scoped.Predicate(models.NewLayerSet("controller", "admin")))
	assert.False(t, scoped.Predicate(models.NewLayerSet("controller")))
}

func TestLoadLastRegistrationWins(t *testing.T) {
	doc := `
services:
  - id: mailer
    class: app.Mailer
  - id: mailer
    class: app.NullMailer
`
	res, err := Load([]byte(doc))
	require.NoError(t, err)

	def, ok := res.Registry.Definition("mailer")
	require.True(t, ok)
	assert.Equal(t, "app.NullMailer", def.Class)
	assert.Equal(t, 1, res.Registry.Size(), "the discarded definition leaves no trace")
}

func TestLoadRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"malformed yaml":   "services: [",
		"bad visibility":   "services:\n  - id: x\n    visibility: internal\n",
		"bad predicate":    "rules:\n  - dependent: a\n    dependency: b\n    if: '(('\n",
		"incomplete rule":  "rules:\n  - dependent: a\n",
		"nameless service": "services:\n  - class: app.X\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load([]byte(doc))
			assert.Error(t, err)
		})
	}
}
