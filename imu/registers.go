package imu

// ICM-20689 register addresses, per the datasheet register map.
const (
	regSmplrtDiv    = 0x19
	regConfig       = 0x1A
	regGyroConfig   = 0x1B
	regAccelConfig  = 0x1C
	regAccelConfig2 = 0x1D
	regFifoEn       = 0x23
	regIntPinCfg    = 0x37
	regIntEnable    = 0x38
	regUserCtrl     = 0x6A
	regPwrMgmt1     = 0x6B
	regPwrMgmt2     = 0x6C
	regFifoCountH   = 0x72
	regFifoRW       = 0x74
	regWhoAmI       = 0x75
)

// Register bit patterns used during bring-up.
const (
	// WHO_AM_I value for the ICM-20689
	whoAmIExpected = 0x98

	// PWR_MGMT_1: device reset, PLL clock select
	bitDeviceReset = 0b1000_0000
	clkSelPLL      = 0b0000_0001

	// PWR_MGMT_2: all sensors on, no low-power modes
	allSensorsOn = 0b0000_0000

	// USER_CTRL: legacy I2C interface off, FIFO reset/enable
	bitI2CDisable = 0b0001_0000
	bitFifoReset  = 0b0000_0100
	bitFifoEnable = 0b0100_0000

	// CONFIG / ACCEL_CONFIG2: DLPF bandwidth selection (internal rate 1kHz)
	dlpfBandwidth      = 0b0000_0001
	accelDlpfBandwidth = 0b0000_0001

	// SMPLRT_DIV = 0: output rate = internal rate = 1000Hz
	sampleRateDiv = 0b0000_0000

	// FIFO_EN: temperature + gyro XYZ + accel
	fifoTempGyroAccel = 0b1111_1000

	// INT_PIN_CFG: active low, push-pull, latched, cleared on any read
	intPinActiveLowLatched = 0b1001_1000

	// INT_ENABLE: data ready (not FIFO overflow)
	intEnableDataReady = 0b0000_0001
)
