package msg

// Message groups and reserved functions shared by every manager on the bus.
const (
	GroupHandsFreeManager uint32 = 0x00001002

	FunctionMinimum            uint32 = 0x00001000
	FunctionClientRegistration uint32 = 0x00000001
	FunctionClientError        uint32 = 0x00000011
)

// Hands-Free Manager commands (client to server).
const (
	FunctionConnectionRequestResponse     uint32 = 0x00001001
	FunctionConnectRemoteDevice           uint32 = 0x00001002
	FunctionDisconnectDevice              uint32 = 0x00001003
	FunctionQueryConnectedDevices         uint32 = 0x00001004
	FunctionQueryCurrentConfiguration     uint32 = 0x00001101
	FunctionChangeIncomingConnectionFlags uint32 = 0x00001102

	FunctionDisableEchoNoiseCancellation  uint32 = 0x00001201
	FunctionSetVoiceRecognitionActivation uint32 = 0x00001202
	FunctionSetSpeakerGain                uint32 = 0x00001203
	FunctionSetMicrophoneGain             uint32 = 0x00001204

	FunctionQueryControlIndicatorStatus   uint32 = 0x00001301
	FunctionEnableIndicatorNotification   uint32 = 0x00001302
	FunctionQueryCallHoldMultiSupport     uint32 = 0x00001303
	FunctionSendCallHoldMultiSelection    uint32 = 0x00001304
	FunctionEnableCallWaitNotification    uint32 = 0x00001305
	FunctionEnableCallLineIDNotification  uint32 = 0x00001306
	FunctionDialPhoneNumber               uint32 = 0x00001307
	FunctionDialPhoneNumberFromMemory     uint32 = 0x00001308
	FunctionRedialLastPhoneNumber         uint32 = 0x00001309
	FunctionAnswerIncomingCall            uint32 = 0x0000130A
	FunctionTransmitDTMFCode              uint32 = 0x0000130B
	FunctionVoiceTagRequest               uint32 = 0x0000130C
	FunctionHangUpCall                    uint32 = 0x0000130D
	FunctionQueryCurrentCallsList         uint32 = 0x0000130E
	FunctionSetNetworkOperatorFormat      uint32 = 0x0000130F
	FunctionQueryNetworkOperatorSelection uint32 = 0x00001310
	FunctionEnableExtendedErrorResult     uint32 = 0x00001311
	FunctionQuerySubscriberNumberInfo     uint32 = 0x00001312
	FunctionQueryResponseHoldStatus       uint32 = 0x00001313
	FunctionSetIncomingCallState          uint32 = 0x00001314
	FunctionSendArbitraryCommand          uint32 = 0x00001315
	FunctionSendAvailableCodecList        uint32 = 0x00001316

	FunctionUpdateIndicatorStatusByName    uint32 = 0x00001402
	FunctionSendCallWaitingNotification    uint32 = 0x00001403
	FunctionSendCallLineIDNotification     uint32 = 0x00001404
	FunctionRingIndication                 uint32 = 0x00001405
	FunctionEnableInBandRingToneSetting    uint32 = 0x00001406
	FunctionVoiceTagResponse               uint32 = 0x00001407
	FunctionSendNetworkOperatorSelection   uint32 = 0x00001409
	FunctionSendExtendedErrorResult        uint32 = 0x0000140A
	FunctionSendIncomingCallState          uint32 = 0x0000140C
	FunctionSendTerminatingResponse        uint32 = 0x0000140D
	FunctionEnableArbitraryCmdProcessing   uint32 = 0x0000140E
	FunctionSendArbitraryResponse          uint32 = 0x0000140F
	FunctionSendSelectCodec                uint32 = 0x00001410

	FunctionSetupAudioConnection     uint32 = 0x00001501
	FunctionReleaseAudioConnection   uint32 = 0x00001502
	FunctionSendAudioData            uint32 = 0x00001503
	FunctionQuerySCOConnectionHandle uint32 = 0x00001504

	FunctionRegisterEvents       uint32 = 0x00002001
	FunctionUnregisterEvents     uint32 = 0x00002002
	FunctionRegisterDataEvents   uint32 = 0x00002101
	FunctionUnregisterDataEvents uint32 = 0x00002102
)

// Asynchronous events common to both roles.
const (
	FunctionConnectionRequest      uint32 = 0x00010001
	FunctionDeviceConnected        uint32 = 0x00010002
	FunctionDeviceConnectionStatus uint32 = 0x00010003
	FunctionDeviceDisconnected     uint32 = 0x00010004
	FunctionServiceLevelConnection uint32 = 0x00010005
	FunctionAudioConnected         uint32 = 0x00010006
	FunctionAudioConnectionStatus  uint32 = 0x00010007
	FunctionAudioDisconnected      uint32 = 0x00010008
	FunctionAudioDataReceived      uint32 = 0x00010009
	FunctionVoiceRecognitionInd    uint32 = 0x0001000A
	FunctionSpeakerGainInd         uint32 = 0x0001000B
	FunctionMicrophoneGainInd      uint32 = 0x0001000C
	FunctionIncomingCallStateInd   uint32 = 0x0001000D
)

// Asynchronous events specific to the Hands-Free role.
const (
	FunctionIncomingCallStateCfm          uint32 = 0x00011001
	FunctionControlIndicatorStatusInd     uint32 = 0x00011002
	FunctionControlIndicatorStatusCfm     uint32 = 0x00011003
	FunctionCallHoldMultiSupportCfm       uint32 = 0x00011004
	FunctionCallWaitNotificationInd       uint32 = 0x00011005
	FunctionCallLineIDNotificationInd     uint32 = 0x00011006
	FunctionRingIndicationInd             uint32 = 0x00011007
	FunctionInBandRingToneSettingInd      uint32 = 0x00011008
	FunctionVoiceTagRequestCfm            uint32 = 0x00011009
	FunctionQueryCurrentCallsListCfm      uint32 = 0x0001100A
	FunctionNetworkOperatorSelectionCfm   uint32 = 0x0001100B
	FunctionSubscriberNumberInfoCfm       uint32 = 0x0001100C
	FunctionResponseHoldStatusCfm         uint32 = 0x0001100D
	FunctionCommandResult                 uint32 = 0x0001100E
	FunctionArbitraryResponse             uint32 = 0x0001100F
	FunctionSelectCodecInd                uint32 = 0x00011010
	FunctionQueryCurrentCallsListCfmV2    uint32 = 0x00011012
)

// Asynchronous events specific to the Audio-Gateway role.
const (
	FunctionCallHoldMultiSelectionInd     uint32 = 0x00012001
	FunctionCallWaitNotActivationInd      uint32 = 0x00012002
	FunctionCallLineIDNotActivationInd    uint32 = 0x00012003
	FunctionDisableSoundEnhancementInd    uint32 = 0x00012004
	FunctionDialPhoneNumberInd            uint32 = 0x00012005
	FunctionDialPhoneNumberFromMemInd     uint32 = 0x00012006
	FunctionRedialLastPhoneNumberInd      uint32 = 0x00012007
	FunctionGenerateDTMFCodeInd           uint32 = 0x00012008
	FunctionAnswerCallInd                 uint32 = 0x00012009
	FunctionVoiceTagRequestInd            uint32 = 0x0001200A
	FunctionHangUpInd                     uint32 = 0x0001200B
	FunctionQueryCurrentCallsListInd      uint32 = 0x0001200C
	FunctionNetworkOperatorFormatInd      uint32 = 0x0001200D
	FunctionNetworkOperatorSelectionInd   uint32 = 0x0001200E
	FunctionExtendedErrorResultActInd     uint32 = 0x0001200F
	FunctionSubscriberNumberInfoInd       uint32 = 0x00012010
	FunctionResponseHoldStatusInd         uint32 = 0x00012011
	FunctionArbitraryCommandInd           uint32 = 0x00012012
	FunctionAvailableCodecListInd         uint32 = 0x00012013
	FunctionSelectCodecCfm                uint32 = 0x00012014
	FunctionConnectCodecInd               uint32 = 0x00012015
)

// IsCommand reports whether fn lies in the client to server band.
func IsCommand(fn uint32) bool {
	return fn >= 0x00001000 && fn <= 0x00002fff
}

// IsEvent reports whether fn lies in the asynchronous event band.
func IsEvent(fn uint32) bool {
	return fn >= 0x00010000 && fn <= 0x00012fff
}
