package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestNewRegisterCourierCommand(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		cmd, err := commands.NewRegisterCourierCommand(kernel.NewUUID(), "Ayşe", "+90-555-0001", "34 ABC 123")
		require.NoError(t, err)
		require.Equal(t, "Ayşe", cmd.Name())
		require.Equal(t, "+90-555-0001", cmd.Phone())
		require.Equal(t, "34 ABC 123", cmd.VehicleNumber())
		require.NoError(t, cmd.Validate())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := commands.NewRegisterCourierCommand(kernel.NewUUID(), "", "+90-555-0001", "34 ABC 123")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("empty phone", func(t *testing.T) {
		_, err := commands.NewRegisterCourierCommand(kernel.NewUUID(), "Ayşe", "", "34 ABC 123")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("empty vehicle number", func(t *testing.T) {
		_, err := commands.NewRegisterCourierCommand(kernel.NewUUID(), "Ayşe", "+90-555-0001", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.RegisterCourierCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrRegisterCourierCommandIsNotConstructed)
	})
}
