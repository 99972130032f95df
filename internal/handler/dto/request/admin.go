package request

type RejectDepositRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type ConfirmSafeMintRequest struct {
	TxHash string `json:"tx_hash" binding:"required,len=66,startswith=0x"`
}
