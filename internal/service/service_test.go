package service

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow = time.Now
	newTokenID = uuid.NewString
	parseWithClaims = jwt.ParseWithClaims
	jsonMarshal = json.Marshal
	jsonUnmarshal = json.Unmarshal
}
