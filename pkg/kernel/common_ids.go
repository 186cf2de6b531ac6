package kernel

import "github.com/google/uuid"

// UserID is the identity provider's subject (the Firebase uid)
type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type ResultID string

func NewResultID() ResultID       { return ResultID(uuid.NewString()) }
func (r ResultID) String() string { return string(r) }
func (r ResultID) IsEmpty() bool  { return string(r) == "" }

type SessionID string

func NewSessionID() SessionID      { return SessionID(uuid.NewString()) }
func (s SessionID) String() string { return string(s) }
func (s SessionID) IsEmpty() bool  { return string(s) == "" }

type CareerRecordID string

func NewCareerRecordID() CareerRecordID { return CareerRecordID(uuid.NewString()) }
func (c CareerRecordID) String() string { return string(c) }
func (c CareerRecordID) IsEmpty() bool  { return string(c) == "" }

type IngestJobID string

func NewIngestJobID() IngestJobID    { return IngestJobID(uuid.NewString()) }
func (j IngestJobID) String() string { return string(j) }
func (j IngestJobID) IsEmpty() bool  { return string(j) == "" }

type Email string

func (e Email) String() string { return string(e) }
