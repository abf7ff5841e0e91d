package mosespg_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	mosespg "github.com/jec/moses-pg"
	"github.com/jec/moses-pg/internal/pgmock"
	"github.com/jec/moses-pg/wire"
)

func TestStatement_BindErrorRecovery(t *testing.T) {
	conn, server := connectOK(t,
		pgmock.ExpectAnyMessage(&wire.Parse{}),
		pgmock.ExpectAnyMessage(&wire.Flush{}),
		pgmock.SendMessage(&wire.ParseComplete{}),

		pgmock.ExpectAnyMessage(&wire.Describe{}),
		pgmock.ExpectAnyMessage(&wire.Flush{}),
		pgmock.SendMessage(&wire.ParameterDescription{ParameterOIDs: []int32{23}}),
		pgmock.SendMessage(&wire.NoData{}),

		pgmock.ExpectAnyMessage(&wire.Bind{}),
		pgmock.ExpectAnyMessage(&wire.Flush{}),
		pgmock.SendMessage(&wire.ErrorResponse{Fields: map[byte]string{
			wire.FieldSeverity: "ERROR",
			wire.FieldCode:     "22P02",
			wire.FieldMessage:  "invalid input syntax",
		}}),
		pgmock.ExpectMessage(&wire.Sync{}),
		pgmock.SendMessage(&wire.ReadyForQuery{Status: wire.TxStatusIdle}),
		pgmock.WaitForTerminate(),
	)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stmt, err := mosespg.Prepare(ctx, conn, "delete from t where id = $1", nil, nil)
	require.NoError(t, err)
	require.Nil(t, stmt.Columns())

	_, _, err = stmt.Execute(ctx, [][]byte{[]byte("not-a-number")}, nil, nil, 0, nil)
	require.Error(t, err)

	require.NoError(t, conn.Close(context.Background()))
}

func TestStatement_PortalSuspended(t *testing.T) {
	conn, server := connectOK(t,
		pgmock.ExpectAnyMessage(&wire.Parse{}),
		pgmock.ExpectAnyMessage(&wire.Flush{}),
		pgmock.SendMessage(&wire.ParseComplete{}),

		pgmock.ExpectAnyMessage(&wire.Describe{}),
		pgmock.ExpectAnyMessage(&wire.Flush{}),
		pgmock.SendMessage(&wire.ParameterDescription{}),
		pgmock.SendMessage(&wire.RowDescription{Columns: []wire.ColumnDescriptor{{Name: "id", TypeOID: 23}}}),

		pgmock.ExpectAnyMessage(&wire.Bind{}),
		pgmock.ExpectAnyMessage(&wire.Flush{}),
		pgmock.SendMessage(&wire.BindComplete{}),

		pgmock.ExpectAnyMessage(&wire.Execute{}),
		pgmock.ExpectAnyMessage(&wire.Flush{}),
		pgmock.SendMessage(&wire.DataRow{Values: [][]byte{[]byte("1")}}),
		pgmock.SendMessage(&wire.PortalSuspended{}),

		// a second Execute resumes the same portal without re-binding.
		pgmock.ExpectAnyMessage(&wire.Execute{}),
		pgmock.ExpectAnyMessage(&wire.Flush{}),
		pgmock.SendMessage(&wire.DataRow{Values: [][]byte{[]byte("2")}}),
		pgmock.SendMessage(&wire.CommandComplete{CommandTag: "SELECT 2"}),
		pgmock.WaitForTerminate(),
	)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stmt, err := mosespg.Prepare(ctx, conn, "select id from t", nil, nil)
	require.NoError(t, err)

	result, suspended, err := stmt.Execute(ctx, nil, nil, nil, 1, nil)
	require.NoError(t, err)
	require.True(t, suspended)
	require.Len(t, result.Rows, 1)

	result, suspended, err = stmt.Execute(ctx, nil, nil, nil, 1, nil)
	require.NoError(t, err)
	require.False(t, suspended)
	require.Len(t, result.Rows, 1)

	require.NoError(t, conn.Close(context.Background()))
}
