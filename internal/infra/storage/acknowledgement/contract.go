package acknowledgement

import "github.com/m04kA/GameRoom-ReservationService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
