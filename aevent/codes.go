package aevent

// Event classes and IDs.
var (
	CoreEventClass       = MustFourCC("aevt")
	CoreSuite            = MustFourCC("core")
	MiscStandards        = MustFourCC("misc")
	InternetSuite        = MustFourCC("GURL")
	AEOpenApplication    = MustFourCC("oapp")
	AEReopenApplication  = MustFourCC("rapp")
	AEOpenDocuments      = MustFourCC("odoc")
	AEPrintDocuments     = MustFourCC("pdoc")
	AEOpenContents       = MustFourCC("ocon")
	AEQuitApplication    = MustFourCC("quit")
	AEShowPreferences    = MustFourCC("pref")
	AESleep              = MustFourCC("slep")
	AERestart            = MustFourCC("rest")
	AEShutDown           = MustFourCC("shut")
	AELogOut             = MustFourCC("logo")
	AEReallyLogOut       = MustFourCC("rlgo")
	AEShowRestartDialog  = MustFourCC("rrst")
	AEShowShutdownDialog = MustFourCC("rsdn")
	AEGetURL             = MustFourCC("GURL")
	AEActivate           = MustFourCC("actv")
)

// Parameter keys.
var (
	KeyDirectObject = MustFourCC("----")
	KeyErrorNumber  = MustFourCC("errn")
	KeyErrorString  = MustFourCC("errs")
)

// codes maps the Apple Event Manager names to their values.
var codes = map[string]OSType{
	// event classes
	"kCoreEventClass":   CoreEventClass,
	"kAECoreSuite":      CoreSuite,
	"kAEMiscStandards":  MiscStandards,
	"kAEInternetSuite":  InternetSuite,
	"kAERequiredSuite":  MustFourCC("reqd"),
	"kAETableSuite":     MustFourCC("tbls"),
	"kAETextSuite":      MustFourCC("TEXT"),
	"kAEFinderEvents":   MustFourCC("FNDR"),
	"kAESystemEvents":   MustFourCC("sevs"),
	"kAEAppleScriptSDK": MustFourCC("ascr"),

	// required and core events
	"kAEOpenApplication":    AEOpenApplication,
	"kAEReopenApplication":  AEReopenApplication,
	"kAEOpenDocuments":      AEOpenDocuments,
	"kAEPrintDocuments":     AEPrintDocuments,
	"kAEOpenContents":       AEOpenContents,
	"kAEQuitApplication":    AEQuitApplication,
	"kAEAnswer":             MustFourCC("ansr"),
	"kAEApplicationDied":    MustFourCC("obit"),
	"kAEShowPreferences":    AEShowPreferences,
	"kAEClone":              MustFourCC("clon"),
	"kAEClose":              MustFourCC("clos"),
	"kAECountElements":      MustFourCC("cnte"),
	"kAECreateElement":      MustFourCC("crel"),
	"kAEDelete":             MustFourCC("delo"),
	"kAEDoObjectsExist":     MustFourCC("doex"),
	"kAEGetData":            MustFourCC("getd"),
	"kAEGetDataSize":        MustFourCC("dsiz"),
	"kAEGetClassInfo":       MustFourCC("qobj"),
	"kAEGetEventInfo":       MustFourCC("gtei"),
	"kAEMove":               MustFourCC("move"),
	"kAEOpen":               MustFourCC("odoc"),
	"kAEPrint":              MustFourCC("pdoc"),
	"kAESave":               MustFourCC("save"),
	"kAESetData":            MustFourCC("setd"),
	"kAESelect":             MustFourCC("slct"),
	"kAEActivate":           AEActivate,
	"kAECopy":               MustFourCC("copy"),
	"kAECut":                MustFourCC("cut "),
	"kAEPaste":              MustFourCC("past"),
	"kAEUndo":               MustFourCC("undo"),
	"kAERedo":               MustFourCC("redo"),
	"kAERevert":             MustFourCC("rvrt"),
	"kAEMakeObjectsVisible": MustFourCC("mvis"),
	"kAEGetURL":             AEGetURL,
	"kAEDoScript":           MustFourCC("dosc"),

	// power and session events, sent to loginwindow
	"kAESleep":              AESleep,
	"kAERestart":            AERestart,
	"kAEShutDown":           AEShutDown,
	"kAELogOut":             AELogOut,
	"kAEReallyLogOut":       AEReallyLogOut,
	"kAEShowRestartDialog":  AEShowRestartDialog,
	"kAEShowShutdownDialog": AEShowShutdownDialog,
	"kAEShowPowerDialog":    MustFourCC("pwrd"),

	// keys
	"keyDirectObject":         KeyDirectObject,
	"keyErrorNumber":          KeyErrorNumber,
	"keyErrorString":          KeyErrorString,
	"keyProcessSerialNumber":  MustFourCC("psn "),
	"keyAEResult":             MustFourCC("----"),
	"keyAEInsertHere":         MustFourCC("insh"),
	"keyAEData":               MustFourCC("data"),
	"keyAEObjectClass":        MustFourCC("kocl"),
	"keyAEPropData":           MustFourCC("prdt"),
	"keyAEKeyData":            MustFourCC("seld"),
	"keyAEDesiredClass":       MustFourCC("want"),
	"keyAEContainer":          MustFourCC("from"),
	"keyAEKeyForm":            MustFourCC("form"),
	"keyAEFile":               MustFourCC("kfil"),
	"keyAESaveOptions":        MustFourCC("savo"),
	"keyAEPrintSettings":      MustFourCC("prdt"),
	"keyAETimeoutOptions":     MustFourCC("timo"),
	"keySenderApplicationSig": MustFourCC("sign"),

	// descriptor types
	"typeAEList":                 MustFourCC("list"),
	"typeAERecord":               MustFourCC("reco"),
	"typeAlias":                  MustFourCC("alis"),
	"typeApplicationBundleID":    MustFourCC("bund"),
	"typeApplSignature":          MustFourCC("sign"),
	"typeBoolean":                MustFourCC("bool"),
	"typeChar":                   MustFourCC("TEXT"),
	"typeEnumerated":             MustFourCC("enum"),
	"typeFalse":                  MustFourCC("fals"),
	"typeFileURL":                MustFourCC("furl"),
	"typeIEEE32BitFloatingPoint": MustFourCC("sing"),
	"typeIEEE64BitFloatingPoint": MustFourCC("doub"),
	"typeKernelProcessID":        MustFourCC("kpid"),
	"typeKeyword":                MustFourCC("keyw"),
	"typeLongDateTime":           MustFourCC("ldt "),
	"typeNull":                   MustFourCC("null"),
	"typeObjectSpecifier":        MustFourCC("obj "),
	"typeProcessSerialNumber":    MustFourCC("psn "),
	"typeProperty":               MustFourCC("prop"),
	"typeSInt16":                 MustFourCC("shor"),
	"typeSInt32":                 MustFourCC("long"),
	"typeSInt64":                 MustFourCC("comp"),
	"typeTrue":                   MustFourCC("true"),
	"typeType":                   MustFourCC("type"),
	"typeUInt32":                 MustFourCC("magn"),
	"typeUnicodeText":            MustFourCC("utxt"),
	"typeUTF8Text":               MustFourCC("utf8"),
	"typeWildCard":               MustFourCC("****"),

	// object model classes
	"cApplication": MustFourCC("capp"),
	"cDocument":    MustFourCC("docu"),
	"cFile":        MustFourCC("file"),
	"cFolder":      MustFourCC("cfol"),
	"cItem":        MustFourCC("cobj"),
	"cProperty":    MustFourCC("prop"),
	"cText":        MustFourCC("ctxt"),
	"cWindow":      MustFourCC("cwin"),

	// properties
	"pBounds":         MustFourCC("pbnd"),
	"pClass":          MustFourCC("pcls"),
	"pContents":       MustFourCC("pcnt"),
	"pID":             MustFourCC("ID  "),
	"pIndex":          MustFourCC("pidx"),
	"pIsFrontProcess": MustFourCC("pisf"),
	"pIsModified":     MustFourCC("imod"),
	"pName":           MustFourCC("pnam"),
	"pProperties":     MustFourCC("pALL"),
	"pSelection":      MustFourCC("sele"),
	"pVersion":        MustFourCC("vers"),
	"pVisible":        MustFourCC("pvis"),
	"pVisibleBounds":  MustFourCC("pvbd"),

	// key forms
	"formAbsolutePosition": MustFourCC("indx"),
	"formName":             MustFourCC("name"),
	"formPropertyID":       MustFourCC("prop"),
	"formRange":            MustFourCC("rang"),
	"formRelativePosition": MustFourCC("rele"),
	"formTest":             MustFourCC("test"),
	"formUniqueID":         MustFourCC("ID  "),
	"formWhose":            MustFourCC("whos"),

	// save options
	"kAEAsk": MustFourCC("ask "),
	"kAENo":  MustFourCC("no  "),
	"kAEYes": MustFourCC("yes "),
}
