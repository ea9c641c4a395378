package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratadi/strata/internal/errors"
	"github.com/stratadi/strata/internal/models"
)

func TestRegisterRejectsDuplicateID(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(models.ServiceDefinition{ID: "mailer", Class: "app.Mailer"}))

	err := reg.Register(models.ServiceDefinition{ID: "mailer", Class: "app.OtherMailer"})
	require.Error(t, err)

	var dup *errors.DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "mailer", dup.ID)

	// The original survives a failed strict registration.
	def, ok := reg.Definition("mailer")
	require.True(t, ok)
	assert.Equal(t, "app.Mailer", def.Class)
}

func TestOverrideDiscardsPredecessorEntirely(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(models.ServiceDefinition{
		ID:    "mailer",
		Class: "app.Mailer",
		Args:  []models.Argument{models.Reference("transport")},
	}))

	require.NoError(t, reg.Override(models.ServiceDefinition{ID: "mailer", Class: "app.NullMailer"}))

	def, ok := reg.Definition("mailer")
	require.True(t, ok)
	assert.Equal(t, "app.NullMailer", def.Class)
	assert.Empty(t, def.Args, "no trace of the discarded definition may remain")
	assert.Equal(t, 1, reg.Size())
}

func TestAliasTargetCheckedLazily(t *testing.T) {
	reg := New()
	// Target does not exist yet; this must be accepted and caught at
	// compile time instead.
	require.NoError(t, reg.Alias(models.Alias{ID: "mail", Target: "mailer"}))

	a, ok := reg.AliasFor("mail")
	require.True(t, ok)
	assert.Equal(t, "mailer", a.Target)
}

func TestAliasRequiresIDAndTarget(t *testing.T) {
	reg := New()
	assert.Error(t, reg.Alias(models.Alias{ID: "", Target: "x"}))
	assert.Error(t, reg.Alias(models.Alias{ID: "x", Target: ""}))
}

func TestRemoveAndHas(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(models.ServiceDefinition{ID: "svc"}))
	require.NoError(t, reg.Alias(models.Alias{ID: "alias", Target: "svc"}))

	assert.True(t, reg.Has("svc"))
	assert.True(t, reg.Has("alias"))
	assert.True(t, reg.RemoveDefinition("svc"))
	assert.False(t, reg.RemoveDefinition("svc"))
	assert.False(t, reg.Has("svc"))
	assert.True(t, reg.RemoveAlias("alias"))
	assert.False(t, reg.Has("alias"))
}

func TestDefinitionIDsFollowRegistrationOrder(t *testing.T) {
	reg := New()
	for _, id := range []string{"z", "m", "a"} {
		require.NoError(t, reg.Register(models.ServiceDefinition{ID: id}))
	}
	assert.Equal(t, []string{"z", "m", "a"}, reg.DefinitionIDs())
}

func TestCloneIsIndependent(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(models.ServiceDefinition{ID: "svc", Class: "app.Svc"}))

	cp := reg.Clone()
	require.NoError(t, cp.Override(models.ServiceDefinition{ID: "svc", Class: "app.Replaced"}))
	require.NoError(t, cp.Register(models.ServiceDefinition{ID: "extra"}))

	def, _ := reg.Definition("svc")
	assert.Equal(t, "app.Svc", def.Class, "clone writes must not leak into the original")
	assert.False(t, reg.HasDefinition("extra"))
}
